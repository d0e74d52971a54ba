package courier

import (
	"fmt"
	"net/textproto"
	"strconv"
	"strings"
)

// Headers is a read-only, case-insensitive view of response headers.
// Repeated fields are joined with "," in the order they arrived.
type Headers struct {
	values map[string]string
	order  []string
}

// Get returns the value for name, or "" when absent.
func (h Headers) Get(name string) string {
	return h.values[textproto.CanonicalMIMEHeaderKey(name)]
}

// Lookup returns the value for name and whether it was present.
func (h Headers) Lookup(name string) (string, bool) {
	v, ok := h.values[textproto.CanonicalMIMEHeaderKey(name)]
	return v, ok
}

// Has reports whether name was present.
func (h Headers) Has(name string) bool {
	_, ok := h.Lookup(name)
	return ok
}

// Names returns header names in first-seen order.
func (h Headers) Names() []string {
	return append([]string(nil), h.order...)
}

// Len returns the number of distinct header names.
func (h Headers) Len() int {
	return len(h.order)
}

// Map returns a copy of the headers keyed by canonical name.
func (h Headers) Map() map[string]string {
	out := make(map[string]string, len(h.values))
	for k, v := range h.values {
		out[k] = v
	}
	return out
}

// ParseHeaders reads the header lines of the last head in block. The status
// line and lines without a colon are skipped.
func ParseHeaders(block string) Headers {
	h := Headers{values: make(map[string]string)}

	lines := splitLines(lastHead(block))
	for i, line := range lines {
		if i == 0 && (strings.HasPrefix(line, "HTTP/") || !strings.Contains(line, ":")) {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := textproto.CanonicalMIMEHeaderKey(name)
		value = strings.TrimSpace(value)

		if existing, seen := h.values[key]; seen {
			h.values[key] = existing + "," + value
			continue
		}
		h.values[key] = value
		h.order = append(h.order, key)
	}
	return h
}

// ParseStatusCode reads the status code from the first line of the last
// head in block: the token after the first space.
func ParseStatusCode(block string) (int, error) {
	head := lastHead(block)
	first, _, _ := strings.Cut(head, "\n")
	first = strings.TrimRight(first, "\r")

	tokens := strings.Fields(first)
	if len(tokens) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedResponse, first)
	}
	code, err := strconv.Atoi(tokens[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedResponse, first)
	}
	return code, nil
}

// lastHead returns the final head when block holds several, as happens with
// interim responses, redirects or proxy CONNECT.
func lastHead(block string) string {
	block = strings.TrimRight(strings.ReplaceAll(block, "\r\n", "\n"), "\n")
	if i := strings.LastIndex(block, "\n\n"); i >= 0 {
		return block[i+2:]
	}
	return block
}

func splitLines(head string) []string {
	if head == "" {
		return nil
	}
	return strings.Split(head, "\n")
}
