package codec

import (
	"strings"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/courier/media"
)

// JSONOptions configures the JSON codec.
type JSONOptions struct {
	// UseNumber decodes numbers as json.Number instead of float64.
	UseNumber bool
	// DisallowUnknownFields rejects unknown object keys in Decode.
	DisallowUnknownFields bool
	// NoEscapeHTML leaves <, > and & unescaped when serializing.
	NoEscapeHTML bool
}

// JSON parses and serializes application/json bodies.
type JSON struct {
	api sonic.API
}

// NewJSON returns a JSON codec.
func NewJSON(opts JSONOptions) *JSON {
	return &JSON{
		api: sonic.Config{
			EscapeHTML:            !opts.NoEscapeHTML,
			SortMapKeys:           true,
			CompactMarshaler:      true,
			CopyString:            true,
			ValidateString:        true,
			UseNumber:             opts.UseNumber,
			DisallowUnknownFields: opts.DisallowUnknownFields,
		}.Froze(),
	}
}

func (c *JSON) engine() sonic.API {
	if c.api == nil {
		return sonic.ConfigStd
	}
	return c.api
}

// Parse decodes body into maps, slices and scalars. An empty body yields nil.
func (c *JSON) Parse(body []byte) (any, error) {
	body = StripBOM(body)
	if len(body) == 0 {
		return nil, nil
	}

	var parsed any
	if err := c.engine().Unmarshal(body, &parsed); err != nil {
		return nil, newParseError(ErrJSONParse, media.JSON, err)
	}
	if parsed == nil && !strings.EqualFold(strings.TrimSpace(string(body)), "null") {
		return nil, newParseError(ErrJSONParse, media.JSON, nil)
	}
	return parsed, nil
}

// Decode unmarshals body into v.
func (c *JSON) Decode(body []byte, v any) error {
	body = StripBOM(body)
	if err := c.engine().Unmarshal(body, v); err != nil {
		return newParseError(ErrJSONParse, media.JSON, err)
	}
	return nil
}

// Serialize encodes payload as JSON.
func (c *JSON) Serialize(payload any) ([]byte, error) {
	data, err := c.engine().Marshal(payload)
	if err != nil {
		return nil, newSerializeError(ErrSerialize, media.JSON, err)
	}
	return data, nil
}
