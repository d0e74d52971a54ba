package courier

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResponse means no status code could be read from the header block.
	ErrMalformedResponse = errors.New("malformed response: unable to read status code")

	// ErrNoDecoder means the selected codec cannot decode into a typed value.
	ErrNoDecoder = errors.New("codec does not support typed decoding")
)

// TransportError wraps a failure reported by the transport.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the transport's error unchanged.
func (e *TransportError) Unwrap() error {
	return e.Err
}
