/*
Package tracing propagates trace context on outgoing courier requests.

Each traced request opens a span. The span joins the trace carried by the
caller's context or starts a new one, and its IDs are sent in the
X-Trace-Id and X-Span-Id headers. Finished spans are logged through zap at
debug level, or at warn level when the exchange failed.

Trace and span IDs are ULIDs, so they sort by creation time.

# Usage

	tracer := tracing.New(logger)

	span, ctx := tracer.StartSpan(ctx, "GET api.example.com")
	tracing.Inject(ctx, headers)

	// ... perform the exchange ...

	span.SetStatus(200)
	tracer.Submit(span)
*/
package tracing
