package tracing

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Propagation headers
const (
	TraceHeader = "X-Trace-Id"
	SpanHeader  = "X-Span-Id"
)

// TraceID identifies a whole request flow
type TraceID string

// SpanID identifies one operation within a trace
type SpanID string

// Span is one outgoing request
type Span struct {
	TraceID    TraceID
	SpanID     SpanID
	ParentID   SpanID
	Name       string
	StartTime  time.Time
	Duration   time.Duration
	Tags       map[string]string
	Error      error
	StatusCode int
}

// SetTag adds a tag
func (s *Span) SetTag(key, value string) {
	s.Tags[key] = value
}

// SetError records a failure
func (s *Span) SetError(err error) {
	s.Error = err
}

// SetStatus records the response status code
func (s *Span) SetStatus(code int) {
	s.StatusCode = code
}

// Finish stops the span clock
func (s *Span) Finish() {
	s.Duration = time.Since(s.StartTime)
}

// Tracer creates spans and reports them to a logger
type Tracer struct {
	logger *zap.Logger
}

// New creates a tracer. A nil logger discards finished spans.
func New(logger *zap.Logger) *Tracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracer{logger: logger}
}

// StartSpan opens a span under the trace carried by ctx, starting a new
// trace when there is none. The returned context carries the new span.
func (t *Tracer) StartSpan(ctx context.Context, name string) (*Span, context.Context) {
	traceID := TraceIDFrom(ctx)
	if traceID == "" {
		traceID = NewTraceID()
	}

	span := &Span{
		TraceID:   traceID,
		SpanID:    NewSpanID(),
		ParentID:  SpanIDFrom(ctx),
		Name:      name,
		StartTime: time.Now(),
		Tags:      make(map[string]string),
	}

	ctx = context.WithValue(ctx, traceIDKey, traceID)
	ctx = context.WithValue(ctx, spanIDKey, span.SpanID)
	return span, ctx
}

// Submit finishes span if needed and logs it
func (t *Tracer) Submit(span *Span) {
	if span.Duration == 0 {
		span.Finish()
	}

	fields := []zap.Field{
		zap.String("trace_id", string(span.TraceID)),
		zap.String("span_id", string(span.SpanID)),
		zap.String("operation", span.Name),
		zap.Duration("duration", span.Duration),
	}
	if span.ParentID != "" {
		fields = append(fields, zap.String("parent_id", string(span.ParentID)))
	}
	if span.StatusCode != 0 {
		fields = append(fields, zap.Int("status", span.StatusCode))
	}
	for k, v := range span.Tags {
		fields = append(fields, zap.String(k, v))
	}

	if span.Error != nil {
		t.logger.Warn("span failed", append(fields, zap.Error(span.Error))...)
		return
	}
	t.logger.Debug("span completed", fields...)
}

type contextKey string

const (
	traceIDKey contextKey = "trace_id"
	spanIDKey  contextKey = "span_id"
)

// WithTraceID returns ctx carrying traceID, so requests sent with it join
// that trace
func WithTraceID(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFrom returns the trace ID carried by ctx
func TraceIDFrom(ctx context.Context) TraceID {
	traceID, _ := ctx.Value(traceIDKey).(TraceID)
	return traceID
}

// SpanIDFrom returns the span ID carried by ctx
func SpanIDFrom(ctx context.Context) SpanID {
	spanID, _ := ctx.Value(spanIDKey).(SpanID)
	return spanID
}

// Inject writes the trace context of ctx into headers without replacing
// values the caller already set
func Inject(ctx context.Context, headers map[string]string) {
	if traceID := TraceIDFrom(ctx); traceID != "" {
		if _, ok := headers[TraceHeader]; !ok {
			headers[TraceHeader] = string(traceID)
		}
	}
	if spanID := SpanIDFrom(ctx); spanID != "" {
		if _, ok := headers[SpanHeader]; !ok {
			headers[SpanHeader] = string(spanID)
		}
	}
}
