package transport

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/GriffinCanCode/courier/internal/infrastructure/resilience"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Settings configures the resty transport
type Settings struct {
	RetryCount   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	UserAgent    string

	// RequestsPerSecond of zero disables rate limiting
	RequestsPerSecond float64
	Burst             int

	BreakerEnabled  bool
	BreakerFailures uint32
	BreakerTimeout  time.Duration

	Logger *zap.Logger
}

// DefaultSettings returns production defaults
func DefaultSettings() Settings {
	return Settings{
		RetryCount:      3,
		RetryWaitMin:    1 * time.Second,
		RetryWaitMax:    30 * time.Second,
		UserAgent:       "courier/1.0",
		BreakerEnabled:  true,
		BreakerFailures: 10,
		BreakerTimeout:  30 * time.Second,
	}
}

// connection flags that require a distinct *http.Transport
type profile struct {
	follow       bool
	maxRedirects int
	verify       bool
	cert         string // certFingerprint of the client certificate
	proxy        string
}

// certFingerprint identifies a client certificate by its DER chain, so
// certificates loaded twice from the same files share one client.
func certFingerprint(cert *tls.Certificate) string {
	if cert == nil {
		return ""
	}
	h := sha256.New()
	for _, der := range cert.Certificate {
		h.Write(der)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Resty is the production transport. Safe for concurrent use.
type Resty struct {
	settings Settings
	limiter  *rate.Limiter
	breaker  *resilience.Breaker
	logger   *zap.Logger

	mu      sync.Mutex
	clients map[profile]*resty.Client
}

// NewResty creates a resty transport
func NewResty(settings Settings) *Resty {
	logger := settings.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if settings.RequestsPerSecond > 0 {
		burst := settings.Burst
		if burst < 1 {
			burst = max(int(settings.RequestsPerSecond), 1)
		}
		limiter = rate.NewLimiter(rate.Limit(settings.RequestsPerSecond), burst)
	}

	var breaker *resilience.Breaker
	if settings.BreakerEnabled {
		failures := settings.BreakerFailures
		if failures == 0 {
			failures = 10
		}
		breaker = resilience.New("courier-transport", resilience.Settings{
			MaxRequests: 5,
			Interval:    60 * time.Second,
			Timeout:     settings.BreakerTimeout,
			ReadyToTrip: func(counts resilience.Counts) bool {
				// Trip on a long failure streak or >70% failures over 20+ requests
				return counts.ConsecutiveFailures >= failures ||
					(counts.Requests >= 20 && float64(counts.TotalFailures)/float64(counts.Requests) > 0.7)
			},
			OnStateChange: func(name string, from, to resilience.State) {
				logger.Warn("circuit breaker state changed",
					zap.String("breaker", name),
					zap.Stringer("from", from),
					zap.Stringer("to", to))
			},
		})
	}

	return &Resty{
		settings: settings,
		limiter:  limiter,
		breaker:  breaker,
		logger:   logger,
		clients:  make(map[profile]*resty.Client),
	}
}

// Execute sends req and returns the raw response head and body
func (t *Resty) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	if req.Options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Options.Timeout)
		defer cancel()
	}

	r := t.client(req.Options).R().
		SetContext(ctx).
		SetHeaders(req.Header)
	if len(req.Body) > 0 {
		r.SetBody(req.Body)
	}

	send := func() (*resty.Response, error) {
		return r.Execute(req.Method, req.URL)
	}

	var (
		resp *resty.Response
		err  error
	)
	if t.breaker != nil {
		resp, err = resilience.Do(t.breaker, send)
	} else {
		resp, err = send()
	}
	if err != nil {
		return nil, err
	}
	if resp.RawResponse == nil {
		return nil, fmt.Errorf("%s %s: no response", req.Method, req.URL)
	}

	t.logger.Debug("transport exchange",
		zap.String("method", req.Method),
		zap.String("url", req.URL),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("duration", resp.Time()))

	return &Response{
		HeaderBlock: HeaderBlock(resp.RawResponse),
		Body:        resp.Body(),
	}, nil
}

// BreakerState reports the circuit breaker state, "disabled" when off
func (t *Resty) BreakerState() string {
	if t.breaker == nil {
		return "disabled"
	}
	return t.breaker.State().String()
}

func (t *Resty) client(opts Options) *resty.Client {
	key := profile{
		follow:       opts.FollowRedirects,
		maxRedirects: opts.MaxRedirects,
		verify:       opts.VerifyTLS,
		cert:         certFingerprint(opts.ClientCert),
		proxy:        opts.Proxy,
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if c, ok := t.clients[key]; ok {
		return c
	}
	c := t.newClient(key, opts.ClientCert)
	t.clients[key] = c
	return c
}

func (t *Resty) newClient(p profile, cert *tls.Certificate) *resty.Client {
	s := t.settings

	// Pooled transport from retryablehttp, as used by its own client
	base, ok := retryablehttp.NewClient().HTTPClient.Transport.(*http.Transport)
	if !ok {
		base = http.DefaultTransport.(*http.Transport).Clone()
	}
	base.TLSClientConfig = &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: !p.verify,
	}
	if cert != nil {
		base.TLSClientConfig.Certificates = []tls.Certificate{*cert}
	}

	c := resty.New().
		SetTransport(base).
		SetLogger(t.logger.Sugar()).
		SetRetryCount(s.RetryCount).
		SetRetryWaitTime(s.RetryWaitMin).
		SetRetryMaxWaitTime(s.RetryWaitMax).
		SetRetryAfter(func(_ *resty.Client, resp *resty.Response) (time.Duration, error) {
			attempt := 1
			var raw *http.Response
			if resp != nil {
				raw = resp.RawResponse
				if resp.Request != nil {
					attempt = resp.Request.Attempt
				}
			}
			return retryablehttp.DefaultBackoff(s.RetryWaitMin, s.RetryWaitMax, attempt, raw), nil
		}).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if resp == nil || resp.RawResponse == nil || resp.Request == nil {
				return false
			}
			retry, _ := retryablehttp.DefaultRetryPolicy(resp.Request.Context(), resp.RawResponse, err)
			return retry
		})

	if s.UserAgent != "" {
		c.SetHeader("User-Agent", s.UserAgent)
	}
	if p.proxy != "" {
		c.SetProxy(p.proxy)
	}

	if p.follow {
		limit := p.maxRedirects
		if limit <= 0 {
			limit = 10
		}
		c.SetRedirectPolicy(resty.FlexibleRedirectPolicy(limit))
	} else {
		c.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))
	}

	return c
}
