package media

import "strings"

// Default charsets applied when a Content-Type carries no charset parameter.
const (
	DefaultTextCharset = "iso-8859-1"
	DefaultCharset     = "utf-8"
)

// ContentType is the interpreted form of a response Content-Type header.
type ContentType struct {
	Raw     string
	Base    string
	Charset string
	// CharsetDeclared is false when Charset came from the defaults.
	CharsetDeclared bool
	Vendor          bool
	Personal        bool
	// Parent is Base with any +suffix resolved, e.g. application/vnd.api+json
	// becomes application/json.
	Parent string
}

// Interpret derives base type, charset, vendor/personal flags and parent
// type from a raw Content-Type header value.
func Interpret(raw string) ContentType {
	segments := strings.Split(raw, ";")
	ct := ContentType{
		Raw:  raw,
		Base: strings.TrimSpace(segments[0]),
	}

	for _, seg := range segments[1:] {
		if !strings.Contains(strings.ToLower(seg), "charset=") {
			continue
		}
		_, value, ok := strings.Cut(seg, "=")
		if !ok {
			continue
		}
		ct.Charset = strings.Trim(strings.TrimSpace(value), `"`)
		ct.CharsetDeclared = ct.Charset != ""
		break
	}

	if !ct.CharsetDeclared {
		if strings.HasPrefix(ct.Base, "text/") {
			ct.Charset = DefaultTextCharset
		} else {
			ct.Charset = DefaultCharset
		}
	}

	if _, subtype, ok := strings.Cut(ct.Base, "/"); ok {
		ct.Vendor = strings.HasPrefix(subtype, "vnd.")
		ct.Personal = strings.HasPrefix(subtype, "prs.")
	}

	ct.Parent = ct.Base
	if _, suffix, ok := strings.Cut(ct.Base, "+"); ok {
		if parent, err := Resolve(suffix); err == nil {
			ct.Parent = parent
		}
	}

	return ct
}

// IsText reports whether the base type is a text/ type.
func (c ContentType) IsText() bool {
	return strings.HasPrefix(c.Base, "text/")
}

func (c ContentType) String() string {
	return c.Raw
}
