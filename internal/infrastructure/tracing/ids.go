package tracing

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// generator produces ULIDs from a shared entropy source
type generator struct {
	mu      sync.Mutex
	entropy io.Reader
}

var ids = &generator{entropy: ulid.Monotonic(rand.Reader, 0)}

func (g *generator) next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}

// NewTraceID returns a fresh, time-sortable trace ID
func NewTraceID() TraceID {
	return TraceID(ids.next())
}

// NewSpanID returns a fresh span ID
func NewSpanID() SpanID {
	return SpanID(ids.next())
}

// Timestamp extracts the creation time encoded in a trace or span ID
func Timestamp(id string) (time.Time, error) {
	parsed, err := ulid.Parse(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
