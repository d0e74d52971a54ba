package courier

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/GriffinCanCode/courier/codec"
	"github.com/GriffinCanCode/courier/internal/infrastructure/config"
	"github.com/GriffinCanCode/courier/internal/infrastructure/logging"
	"github.com/GriffinCanCode/courier/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/courier/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/courier/media"
	"github.com/GriffinCanCode/courier/transport"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Client builds requests and resolves their responses. It is safe for
// concurrent use; the requests it creates are not.
type Client struct {
	registry  *codec.Registry
	transport transport.Transport
	logger    *zap.Logger
	metrics   *monitoring.Metrics
	tracer    *tracing.Tracer
	traced    bool

	defaults  transport.Options
	sniff     bool
	transcode bool

	mu       sync.RWMutex
	template *Request
}

// Option configures a Client.
type Option func(*Client)

// WithRegistry uses reg instead of the process-wide registry.
func WithRegistry(reg *codec.Registry) Option {
	return func(c *Client) {
		if reg != nil {
			c.registry = reg
		}
	}
}

// WithTransport replaces the resty transport.
func WithTransport(t transport.Transport) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRegisterer registers the client's metrics with reg instead of the
// process-wide default.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Client) {
		if reg != nil {
			c.metrics = monitoring.NewMetrics(reg)
		}
	}
}

// WithTransportOptions sets the option flags every request starts from.
func WithTransportOptions(opts transport.Options) Option {
	return func(c *Client) {
		c.defaults = opts
	}
}

// WithSniffing detects the content type of responses that carry none.
func WithSniffing() Option {
	return func(c *Client) {
		c.sniff = true
	}
}

// WithUTF8Transcoding converts non-UTF-8 text bodies before parsing.
func WithUTF8Transcoding() Option {
	return func(c *Client) {
		c.transcode = true
	}
}

// WithTracing opens a span per request, sends X-Trace-Id and X-Span-Id
// headers and logs finished spans.
func WithTracing() Option {
	return func(c *Client) {
		c.traced = true
	}
}

// ContextWithTraceID returns ctx carrying traceID. Traced requests sent with
// it join that trace instead of starting a new one.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return tracing.WithTraceID(ctx, tracing.TraceID(traceID))
}

// New creates a client backed by the process-wide registry, a resty
// transport with default settings and a logger that reports warnings to
// stderr.
func New(opts ...Option) *Client {
	c := &Client{
		defaults: transport.Options{VerifyTLS: true},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logging.NewDefault().Logger
	}

	if c.registry == nil {
		c.registry = codec.Default()
	}
	if c.metrics == nil {
		c.metrics = monitoring.Default()
	}
	if c.traced {
		c.tracer = tracing.New(c.logger)
	}
	if c.transport == nil {
		settings := transport.DefaultSettings()
		settings.Logger = c.logger
		c.transport = transport.NewResty(settings)
	}
	return c
}

// NewFromEnv creates a client configured from COURIER_* environment
// variables. It owns its registry, so COURIER_EXTENDED_CODECS never changes
// the process-wide one.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return newFromConfig(cfg, opts...)
}

func newFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Development = cfg.Logging.Development

	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	reg := codec.NewRegistry()
	reg.Install()
	if cfg.Codecs.Extended {
		reg.InstallExtended()
	}

	settings := transport.Settings{
		RetryCount:        cfg.Transport.RetryCount,
		RetryWaitMin:      cfg.Transport.RetryWaitMin,
		RetryWaitMax:      cfg.Transport.RetryWaitMax,
		UserAgent:         cfg.Transport.UserAgent,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
		BreakerEnabled:    cfg.Breaker.Enabled,
		BreakerFailures:   cfg.Breaker.ConsecutiveFailures,
		BreakerTimeout:    cfg.Breaker.Timeout,
		Logger:            logger.Logger,
	}

	base := []Option{
		WithLogger(logger.Logger),
		WithRegistry(reg),
		WithTransport(transport.NewResty(settings)),
		WithTransportOptions(transport.Options{
			Timeout:         cfg.Transport.Timeout,
			FollowRedirects: cfg.Transport.FollowRedirects,
			MaxRedirects:    cfg.Transport.MaxRedirects,
			VerifyTLS:       cfg.Transport.VerifyTLS,
			Proxy:           cfg.Transport.Proxy,
		}),
	}
	if cfg.Codecs.Sniff {
		base = append(base, WithSniffing())
	}
	if cfg.Codecs.TranscodeUTF8 {
		base = append(base, WithUTF8Transcoding())
	}
	if cfg.Tracing.Enabled {
		base = append(base, WithTracing())
	}

	return New(append(base, opts...)...), nil
}

// Registry returns the registry the client resolves codecs from.
func (c *Client) Registry() *codec.Registry {
	return c.registry
}

// SetTemplate makes every new request start as a copy of tmpl. A nil tmpl
// clears the template. The method and URI of tmpl are not copied.
func (c *Client) SetTemplate(tmpl *Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tmpl == nil {
		c.template = nil
		return
	}
	c.template = tmpl.clone()
}

// NewRequest starts a request for method and uri.
func (c *Client) NewRequest(method, uri string) *Request {
	c.mu.RLock()
	tmpl := c.template
	c.mu.RUnlock()

	var r *Request
	if tmpl != nil {
		r = tmpl.clone()
	} else {
		r = newRequest(c)
	}
	r.client = c
	r.method = method
	r.uri = uri
	return r
}

// Get starts a GET request.
func (c *Client) Get(uri string) *Request { return c.NewRequest(http.MethodGet, uri) }

// Post starts a POST request.
func (c *Client) Post(uri string) *Request { return c.NewRequest(http.MethodPost, uri) }

// Put starts a PUT request.
func (c *Client) Put(uri string) *Request { return c.NewRequest(http.MethodPut, uri) }

// Patch starts a PATCH request.
func (c *Client) Patch(uri string) *Request { return c.NewRequest(http.MethodPatch, uri) }

// Delete starts a DELETE request.
func (c *Client) Delete(uri string) *Request { return c.NewRequest(http.MethodDelete, uri) }

// Head starts a HEAD request.
func (c *Client) Head(uri string) *Request { return c.NewRequest(http.MethodHead, uri) }

// Options starts an OPTIONS request.
func (c *Client) Options(uri string) *Request { return c.NewRequest(http.MethodOptions, uri) }

// ResolveBody parses body as a response with the given Content-Type header.
// expected may be an alias or a full MIME type; empty means none.
func (c *Client) ResolveBody(body []byte, contentType, expected string) (any, error) {
	if expected != "" {
		mime, err := media.Resolve(expected)
		if err != nil {
			return nil, err
		}
		expected = mime
	}
	ct := media.Interpret(contentType)
	value, err := resolveBody(c.registry, body, ct, expected, nil, true)
	if err != nil {
		c.metrics.RecordCodecError(ct.Base, "parse")
	}
	return value, err
}

// SerializePayload encodes payload for contentType (alias or full MIME type)
// under mode. An empty contentType stringifies the payload.
func (c *Client) SerializePayload(payload any, contentType string, mode SerializeMode) ([]byte, error) {
	mime := contentType
	if mime != "" {
		var err error
		if mime, err = media.Resolve(contentType); err != nil {
			return nil, err
		}
	}
	body, err := serializePayload(c.registry, mode, mime, nil, payload)
	if err != nil {
		c.metrics.RecordCodecError(mime, "serialize")
	}
	return body, err
}
