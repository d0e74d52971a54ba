package courier

import (
	"net/textproto"
	"strings"

	"github.com/GriffinCanCode/courier/media"
)

// mimeDirectives maps a directive verb to the setter it drives. Longer verbs
// come first so "sendsandexpects" is not read as "sends".
var mimeDirectives = []struct {
	verb  string
	apply func(r *Request, mime string)
}{
	{"sendsandexpects", func(r *Request, mime string) { r.contentType, r.expected = mime, mime }},
	{"expects", func(r *Request, mime string) { r.expected = mime }},
	{"sends", func(r *Request, mime string) { r.contentType = mime }},
}

// Directive applies a named directive such as "sendsJson", "expectsXml" or
// "withX_Api_Key". A sends/expects directive whose suffix is a supported
// alias sets the content type; any other name becomes a header, with a
// leading "with" dropped and underscores turned into dashes. It never fails.
func (r *Request) Directive(name, value string) *Request {
	lower := strings.ToLower(name)
	for _, d := range mimeDirectives {
		alias, ok := strings.CutPrefix(lower, d.verb)
		if !ok || !media.IsSupportedAlias(alias) {
			continue
		}
		mime, err := media.Resolve(alias)
		if err != nil {
			continue
		}
		d.apply(r, mime)
		return r
	}

	header := name
	if len(header) > 4 && strings.EqualFold(header[:4], "with") {
		header = header[4:]
	}
	header = strings.ReplaceAll(header, "_", "-")
	return r.WithHeader(textproto.CanonicalMIMEHeaderKey(header), value)
}
