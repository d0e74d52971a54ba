package bodyenc

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// DetectCharset guesses the charset of data, falling back to utf-8.
func DetectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

// IsUTF8 reports whether label names UTF-8 or its ASCII subset.
func IsUTF8(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-8", "utf8", "us-ascii", "ascii":
		return true
	}
	return false
}

// ToUTF8 transcodes body from the named charset to UTF-8. An empty label
// means the charset is detected from the bytes.
func ToUTF8(body []byte, label string) ([]byte, error) {
	if label == "" {
		label = DetectCharset(body)
	}
	if IsUTF8(label) {
		return body, nil
	}

	reader, err := charset.NewReaderLabel(label, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", label, err)
	}
	out, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("transcode %q: %w", label, err)
	}
	return out, nil
}
