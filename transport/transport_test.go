package transport

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() Settings {
	s := DefaultSettings()
	s.RetryCount = 0
	s.RetryWaitMin = time.Millisecond
	s.RetryWaitMax = 5 * time.Millisecond
	return s
}

func TestFuncAdapter(t *testing.T) {
	var seen *Request
	tr := Func(func(ctx context.Context, req *Request) (*Response, error) {
		seen = req
		return &Response{HeaderBlock: "HTTP/1.1 204 No Content\r\n\r\n"}, nil
	})

	resp, err := tr.Execute(context.Background(), &Request{Method: http.MethodGet, URL: "http://example.test"})
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 204 No Content\r\n\r\n", resp.HeaderBlock)
	assert.Equal(t, "http://example.test", seen.URL)
}

func TestHeaderBlock(t *testing.T) {
	resp := &http.Response{
		Proto:      "HTTP/1.1",
		Status:     "201 Created",
		StatusCode: http.StatusCreated,
		Header: http.Header{
			"Content-Type": {"application/json"},
			"Set-Cookie":   {"a=1", "b=2"},
		},
	}

	expected := "HTTP/1.1 201 Created\r\n" +
		"Content-Type: application/json\r\n" +
		"Set-Cookie: a=1\r\n" +
		"Set-Cookie: b=2\r\n" +
		"\r\n"
	assert.Equal(t, expected, HeaderBlock(resp))
}

func TestHeaderBlockFillsMissingStatusLine(t *testing.T) {
	resp := &http.Response{StatusCode: http.StatusNotFound, ProtoMajor: 1, ProtoMinor: 1}
	assert.Equal(t, "HTTP/1.1 404 Not Found\r\n\r\n", HeaderBlock(resp))
}

func TestRestyExecute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Method", r.Method)
		w.Header().Set("X-Agent", r.UserAgent())
		w.Header().Set("X-Custom", r.Header.Get("X-Custom"))
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"echo":` + string(body) + `}`))
	}))
	defer server.Close()

	tr := NewResty(testSettings())
	resp, err := tr.Execute(context.Background(), &Request{
		Method:  http.MethodPost,
		URL:     server.URL,
		Header:  map[string]string{"Content-Type": "application/json", "X-Custom": "yes"},
		Body:    []byte(`"hi"`),
		Options: Options{VerifyTLS: true},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.HeaderBlock, "HTTP/1.1 202 Accepted\r\n"))
	assert.Contains(t, resp.HeaderBlock, "Content-Type: application/json\r\n")
	assert.Contains(t, resp.HeaderBlock, "X-Method: POST\r\n")
	assert.Contains(t, resp.HeaderBlock, "X-Agent: courier/1.0\r\n")
	assert.Contains(t, resp.HeaderBlock, "X-Custom: yes\r\n")
	assert.True(t, strings.HasSuffix(resp.HeaderBlock, "\r\n\r\n"))
	assert.Equal(t, `{"echo":"hi"}`, string(resp.Body))
}

func TestRestyRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusFound)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("arrived"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	tr := NewResty(testSettings())

	t.Run("not followed by default", func(t *testing.T) {
		resp, err := tr.Execute(context.Background(), &Request{Method: http.MethodGet, URL: server.URL + "/old"})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(resp.HeaderBlock, "HTTP/1.1 302 Found\r\n"))
		assert.Contains(t, resp.HeaderBlock, "Location: /new\r\n")
	})

	t.Run("followed when asked", func(t *testing.T) {
		resp, err := tr.Execute(context.Background(), &Request{
			Method:  http.MethodGet,
			URL:     server.URL + "/old",
			Options: Options{FollowRedirects: true, MaxRedirects: 3},
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(resp.HeaderBlock, "HTTP/1.1 200 OK\r\n"))
		assert.Equal(t, "arrived", string(resp.Body))
	})
}

func TestRestyTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	tr := NewResty(testSettings())
	_, err := tr.Execute(context.Background(), &Request{
		Method:  http.MethodGet,
		URL:     server.URL,
		Options: Options{Timeout: 20 * time.Millisecond},
	})
	assert.Error(t, err)
}

func TestRestyCachesClientsPerProfile(t *testing.T) {
	tr := NewResty(testSettings())

	a := tr.client(Options{VerifyTLS: true})
	b := tr.client(Options{VerifyTLS: true, Timeout: time.Second})
	c := tr.client(Options{VerifyTLS: false})

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestRestyCachesClientsPerCertificate(t *testing.T) {
	tr := NewResty(testSettings())
	der := []byte{0x30, 0x82, 0x01, 0x0a}

	first := tr.client(Options{ClientCert: &tls.Certificate{Certificate: [][]byte{der}}})
	for i := 0; i < 100; i++ {
		reloaded := &tls.Certificate{Certificate: [][]byte{append([]byte(nil), der...)}}
		assert.Same(t, first, tr.client(Options{ClientCert: reloaded}))
	}
	other := tr.client(Options{ClientCert: &tls.Certificate{Certificate: [][]byte{{0x30, 0x01}}}})
	assert.NotSame(t, first, other)

	tr.mu.Lock()
	defer tr.mu.Unlock()
	assert.Len(t, tr.clients, 2)
}

func TestRestyBreakerState(t *testing.T) {
	s := testSettings()
	assert.Equal(t, "closed", NewResty(s).BreakerState())

	s.BreakerEnabled = false
	assert.Equal(t, "disabled", NewResty(s).BreakerState())
}

func TestRestyRateLimitHonoursContext(t *testing.T) {
	s := testSettings()
	s.RequestsPerSecond = 0.001
	s.Burst = 1
	tr := NewResty(s)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	_, err := tr.Execute(context.Background(), &Request{Method: http.MethodGet, URL: server.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = tr.Execute(ctx, &Request{Method: http.MethodGet, URL: server.URL})
	assert.ErrorContains(t, err, "rate limit")
}
