package media

import (
	"errors"
	"fmt"
	"strings"
)

// Canonical MIME types known to the alias table.
const (
	JSON     = "application/json"
	XML      = "application/xml"
	XHTML    = "application/html+xml"
	Form     = "application/x-www-form-urlencoded"
	Upload   = "multipart/form-data"
	Plain    = "text/plain"
	JS       = "text/javascript"
	HTML     = "text/html"
	YAML     = "application/x-yaml"
	CSV      = "text/csv"
	TOML     = "application/toml"
	Msgpack  = "application/msgpack"
	BSON     = "application/bson"
	Protobuf = "application/x-protobuf"
)

// ErrUnsupportedAlias indicates a short alias has no canonical MIME mapping.
var ErrUnsupportedAlias = errors.New("unsupported mime alias")

// AliasError reports the alias that failed to resolve.
type AliasError struct {
	Alias string
}

func (e *AliasError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedAlias.Error(), e.Alias)
}

func (e *AliasError) Unwrap() error {
	return ErrUnsupportedAlias
}

var aliases = map[string]string{
	"json":       JSON,
	"xml":        XML,
	"form":       Form,
	"plain":      Plain,
	"text":       Plain,
	"upload":     Upload,
	"html":       HTML,
	"xhtml":      XHTML,
	"js":         JS,
	"javascript": JS,
	"yaml":       YAML,
	"csv":        CSV,
	"toml":       TOML,
	"msgpack":    Msgpack,
	"bson":       BSON,
	"protobuf":   Protobuf,
}

// IsFull reports whether s is a full MIME type rather than an alias.
func IsFull(s string) bool {
	return strings.Contains(s, "/")
}

// Resolve maps a short alias such as "json" to its canonical MIME type.
// Anything containing a slash is returned unchanged.
func Resolve(aliasOrFull string) (string, error) {
	if IsFull(aliasOrFull) {
		return aliasOrFull, nil
	}
	if mime, ok := aliases[aliasOrFull]; ok {
		return mime, nil
	}
	return "", &AliasError{Alias: aliasOrFull}
}

// IsSupportedAlias reports whether candidate is a known short alias.
func IsSupportedAlias(candidate string) bool {
	_, ok := aliases[candidate]
	return ok
}

// Aliases returns a copy of the alias table.
func Aliases() map[string]string {
	out := make(map[string]string, len(aliases))
	for k, v := range aliases {
		out[k] = v
	}
	return out
}
