package courier

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"maps"
	"net/textproto"
	"net/url"
	"slices"
	"time"

	"github.com/GriffinCanCode/courier/codec"
	"github.com/GriffinCanCode/courier/internal/bodyenc"
	"github.com/GriffinCanCode/courier/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/courier/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/courier/media"
	"github.com/GriffinCanCode/courier/transport"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Request is a fluent request builder. Builder errors, such as an unknown
// alias or an unreadable client certificate, are kept and returned by Send.
// A Request must not be shared between goroutines.
type Request struct {
	client *Client

	method string
	uri    string
	query  url.Values
	header map[string]string

	payload     any
	contentType string
	expected    string
	mode        SerializeMode
	serializers map[string]PayloadSerializerFunc

	parse     ParseFunc
	autoParse bool

	opts      transport.Options
	compress  bool
	sniff     bool
	transcode bool

	beforeSend []func(*Request)
	onError    func(error)

	err error
}

func newRequest(c *Client) *Request {
	return &Request{
		client:      c,
		query:       url.Values{},
		header:      make(map[string]string),
		serializers: make(map[string]PayloadSerializerFunc),
		autoParse:   true,
		mode:        SerializeSmart,
		opts:        c.defaults,
		sniff:       c.sniff,
		transcode:   c.transcode,
	}
}

// clone copies r deeply enough that changes to the copy never reach r.
func (r *Request) clone() *Request {
	out := *r
	out.query = url.Values{}
	for k, v := range r.query {
		out.query[k] = append([]string(nil), v...)
	}
	out.header = maps.Clone(r.header)
	out.serializers = maps.Clone(r.serializers)
	out.beforeSend = slices.Clone(r.beforeSend)
	return &out
}

func (r *Request) fail(err error) *Request {
	if r.err == nil {
		r.err = err
	}
	return r
}

// Method returns the HTTP method.
func (r *Request) Method() string { return r.method }

// URI returns the target URI without query additions.
func (r *Request) URI() string { return r.uri }

// ContentType returns the resolved outgoing content type.
func (r *Request) ContentType() string { return r.contentType }

// ExpectedType returns the resolved expected response type.
func (r *Request) ExpectedType() string { return r.expected }

// Err returns the first builder error, if any.
func (r *Request) Err() error { return r.err }

// Header returns the value set for name.
func (r *Request) Header(name string) string {
	return r.header[textproto.CanonicalMIMEHeaderKey(name)]
}

// To replaces the target URI.
func (r *Request) To(uri string) *Request {
	r.uri = uri
	return r
}

// Query adds a query parameter.
func (r *Request) Query(name, value string) *Request {
	r.query.Add(name, value)
	return r
}

// QueryParams adds every parameter in values.
func (r *Request) QueryParams(values url.Values) *Request {
	for k, vs := range values {
		for _, v := range vs {
			r.query.Add(k, v)
		}
	}
	return r
}

// WithHeader sets a request header, replacing any earlier value.
func (r *Request) WithHeader(name, value string) *Request {
	r.header[textproto.CanonicalMIMEHeaderKey(name)] = value
	return r
}

// WithHeaders sets every header in headers.
func (r *Request) WithHeaders(headers map[string]string) *Request {
	for name, value := range headers {
		r.WithHeader(name, value)
	}
	return r
}

// Body sets the payload. A nil payload sends no body.
func (r *Request) Body(payload any) *Request {
	r.payload = payload
	return r
}

// Sends sets the outgoing content type from an alias or full MIME type.
func (r *Request) Sends(mime string) *Request {
	full, err := media.Resolve(mime)
	if err != nil {
		return r.fail(err)
	}
	r.contentType = full
	return r
}

// Expects sets the expected response type from an alias or full MIME type.
// It takes precedence over the response's Content-Type.
func (r *Request) Expects(mime string) *Request {
	full, err := media.Resolve(mime)
	if err != nil {
		return r.fail(err)
	}
	r.expected = full
	return r
}

// SendsAndExpects sets both content types.
func (r *Request) SendsAndExpects(mime string) *Request {
	return r.Sends(mime).Expects(mime)
}

// SendsJSON sends application/json.
func (r *Request) SendsJSON() *Request { return r.Sends(media.JSON) }

// ExpectsJSON parses the response as JSON.
func (r *Request) ExpectsJSON() *Request { return r.Expects(media.JSON) }

// SendsXML sends application/xml.
func (r *Request) SendsXML() *Request { return r.Sends(media.XML) }

// ExpectsXML parses the response as XML.
func (r *Request) ExpectsXML() *Request { return r.Expects(media.XML) }

// SendsForm sends a URL-encoded form.
func (r *Request) SendsForm() *Request { return r.Sends(media.Form) }

// SendsCSV sends text/csv.
func (r *Request) SendsCSV() *Request { return r.Sends(media.CSV) }

// ExpectsCSV parses the response as CSV.
func (r *Request) ExpectsCSV() *Request { return r.Expects(media.CSV) }

// ExpectsPlain leaves the response body as text.
func (r *Request) ExpectsPlain() *Request { return r.Expects(media.Plain) }

// BasicAuth sets a Basic Authorization header.
func (r *Request) BasicAuth(username, password string) *Request {
	token := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return r.WithHeader("Authorization", "Basic "+token)
}

// BearerAuth sets a Bearer Authorization header.
func (r *Request) BearerAuth(token string) *Request {
	return r.WithHeader("Authorization", "Bearer "+token)
}

// UserAgent sets the User-Agent header.
func (r *Request) UserAgent(agent string) *Request {
	return r.WithHeader("User-Agent", agent)
}

// Timeout bounds the exchange. Zero removes the limit.
func (r *Request) Timeout(d time.Duration) *Request {
	r.opts.Timeout = d
	return r
}

// FollowRedirects enables or disables redirect following.
func (r *Request) FollowRedirects(follow bool) *Request {
	r.opts.FollowRedirects = follow
	return r
}

// MaxRedirects follows at most n redirects.
func (r *Request) MaxRedirects(n int) *Request {
	r.opts.FollowRedirects = n > 0
	r.opts.MaxRedirects = n
	return r
}

// StrictSSL enables or disables certificate verification.
func (r *Request) StrictSSL(strict bool) *Request {
	r.opts.VerifyTLS = strict
	return r
}

// Proxy routes the request through an http or https proxy.
func (r *Request) Proxy(proxyURL string) *Request {
	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return r.fail(fmt.Errorf("invalid proxy URL: %w", err))
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return r.fail(fmt.Errorf("proxy URL must use http or https scheme: %q", proxyURL))
	}
	r.opts.Proxy = proxyURL
	return r
}

// ClientCert presents the PEM certificate and key pair during the TLS handshake.
func (r *Request) ClientCert(certFile, keyFile string) *Request {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return r.fail(fmt.Errorf("failed to load client certificate: %w", err))
	}
	r.opts.ClientCert = &cert
	return r
}

// SerializePayload sets the payload serialization mode.
func (r *Request) SerializePayload(mode SerializeMode) *Request {
	r.mode = mode
	return r
}

// RegisterPayloadSerializer overrides payload encoding for one content type
// (alias or full MIME type) or for every type with AnyType.
func (r *Request) RegisterPayloadSerializer(mime string, fn PayloadSerializerFunc) *Request {
	key := mime
	if mime != AnyType {
		full, err := media.Resolve(mime)
		if err != nil {
			return r.fail(err)
		}
		key = full
	}
	r.serializers[key] = fn
	return r
}

// ParseWith replaces codec selection with fn.
func (r *Request) ParseWith(fn ParseFunc) *Request {
	r.parse = fn
	return r
}

// ParseWithCodec parses the response with c, owned by this request alone.
func (r *Request) ParseWithCodec(c codec.Codec) *Request {
	if c == nil {
		r.parse = nil
		return r
	}
	r.parse = c.Parse
	return r
}

// WithoutAutoParsing leaves the response body as a string.
func (r *Request) WithoutAutoParsing() *Request {
	r.autoParse = false
	return r
}

// Compress gzips the request body.
func (r *Request) Compress() *Request {
	r.compress = true
	return r
}

// Sniff detects the response type when the server sends no Content-Type.
func (r *Request) Sniff() *Request {
	r.sniff = true
	return r
}

// TranscodeUTF8 converts non-UTF-8 text responses before parsing.
func (r *Request) TranscodeUTF8() *Request {
	r.transcode = true
	return r
}

// BeforeSend registers a hook run just before the request is assembled.
func (r *Request) BeforeSend(fn func(*Request)) *Request {
	if fn != nil {
		r.beforeSend = append(r.beforeSend, fn)
	}
	return r
}

// WhenError registers a callback that sees transport errors before Send
// returns them.
func (r *Request) WhenError(fn func(error)) *Request {
	r.onError = fn
	return r
}

// Send executes the request. When the body fails to parse, the response is
// returned together with the error so the raw body stays available.
func (r *Request) Send(ctx context.Context) (*Response, error) {
	if r.client == nil {
		return nil, errors.New("request has no client")
	}
	if r.err != nil {
		return nil, r.err
	}
	for _, hook := range r.beforeSend {
		hook(r)
	}
	if r.err != nil {
		return nil, r.err
	}

	c := r.client
	treq, err := r.assemble()
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.String("request_id", treq.Header["X-Request-Id"]),
		zap.String("method", treq.Method),
		zap.String("url", treq.URL),
	}

	var span *tracing.Span
	if c.tracer != nil {
		span, ctx = c.tracer.StartSpan(ctx, treq.Method+" "+hostOf(treq.URL))
		span.SetTag("request_id", treq.Header["X-Request-Id"])
		tracing.Inject(ctx, treq.Header)
		fields = append(fields, zap.String("trace_id", string(span.TraceID)))
		defer c.tracer.Submit(span)
	}
	log := c.logger.With(fields...)

	timer := monitoring.NewTimer(c.metrics, treq.Method)
	tresp, err := c.transport.Execute(ctx, treq)
	if err != nil {
		timer.Fail()
		c.metrics.RecordTransportError(treq.Method)
		log.Warn("transport failed", zap.Error(err))
		if span != nil {
			span.SetError(err)
		}

		terr := &TransportError{Method: treq.Method, URL: treq.URL, Err: err}
		if r.onError != nil {
			r.onError(terr)
		}
		return nil, terr
	}

	resp, err := newResponse(r, tresp)
	if resp == nil {
		log.Warn("malformed response", zap.Error(err))
		if span != nil {
			span.SetError(err)
		}
		return nil, err
	}
	duration := timer.Stop(resp.Code, len(resp.RawBody))
	if span != nil {
		span.SetStatus(resp.Code)
		resp.TraceID = string(span.TraceID)
	}

	if err != nil {
		c.metrics.RecordCodecError(resp.ContentType.Base, "parse")
		log.Warn("response body could not be parsed",
			zap.Int("status", resp.Code),
			zap.String("content_type", resp.ContentType.Raw),
			zap.Error(err))
		return resp, err
	}

	log.Debug("request completed",
		zap.Int("status", resp.Code),
		zap.String("content_type", resp.ContentType.Raw),
		zap.Duration("duration", duration))
	return resp, nil
}

// assemble builds the transport request.
func (r *Request) assemble() (*transport.Request, error) {
	target, err := r.url()
	if err != nil {
		return nil, err
	}

	header := maps.Clone(r.header)
	if r.contentType != "" {
		if _, ok := header["Content-Type"]; !ok {
			header["Content-Type"] = r.contentType
		}
	}
	if r.expected != "" {
		if _, ok := header["Accept"]; !ok {
			header["Accept"] = r.expected
		}
	}
	if _, ok := header["X-Request-Id"]; !ok {
		header["X-Request-Id"] = uuid.NewString()
	}

	body, err := serializePayload(r.client.registry, r.mode, r.contentType, r.serializers, r.payload)
	if err != nil {
		r.client.metrics.RecordCodecError(r.contentType, "serialize")
		return nil, fmt.Errorf("failed to serialize payload: %w", err)
	}
	if r.compress && len(body) > 0 {
		if body, err = bodyenc.Gzip(body); err != nil {
			return nil, fmt.Errorf("failed to compress payload: %w", err)
		}
		header["Content-Encoding"] = "gzip"
	}

	return &transport.Request{
		Method:  r.method,
		URL:     target,
		Header:  header,
		Body:    body,
		Options: r.opts,
	}, nil
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Host
}

func (r *Request) url() (string, error) {
	u, err := url.Parse(r.uri)
	if err != nil {
		return "", fmt.Errorf("invalid uri %q: %w", r.uri, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid uri %q: scheme and host are required", r.uri)
	}
	if len(r.query) > 0 {
		q := u.Query()
		for k, vs := range r.query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
