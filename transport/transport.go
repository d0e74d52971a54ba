package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Transport executes a single request
type Transport interface {
	Execute(ctx context.Context, req *Request) (*Response, error)
}

// Func adapts an ordinary function to Transport
type Func func(ctx context.Context, req *Request) (*Response, error)

// Execute calls f(ctx, req)
func (f Func) Execute(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// Options are per-request connection flags
type Options struct {
	// Timeout bounds the whole exchange; zero means no per-request limit
	Timeout         time.Duration
	FollowRedirects bool
	// MaxRedirects applies when FollowRedirects is set; zero means the transport default
	MaxRedirects int
	VerifyTLS    bool
	ClientCert   *tls.Certificate
	// Proxy is a proxy URL such as http://host:3128
	Proxy string
}

// Request is what the core hands to a transport
type Request struct {
	Method  string
	URL     string
	Header  map[string]string
	Body    []byte
	Options Options
}

// Response is the raw result of an exchange
type Response struct {
	HeaderBlock string
	Body        []byte
}

// HeaderBlock renders the head of an *http.Response in wire form
func HeaderBlock(resp *http.Response) string {
	proto := resp.Proto
	if proto == "" {
		proto = fmt.Sprintf("HTTP/%d.%d", max(resp.ProtoMajor, 1), resp.ProtoMinor)
	}
	status := resp.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var b strings.Builder
	b.WriteString(proto)
	b.WriteByte(' ')
	b.WriteString(status)
	b.WriteString("\r\n")

	names := make([]string, 0, len(resp.Header))
	for name := range resp.Header {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, value := range resp.Header[name] {
			b.WriteString(name)
			b.WriteString(": ")
			b.WriteString(value)
			b.WriteString("\r\n")
		}
	}
	b.WriteString("\r\n")
	return b.String()
}
