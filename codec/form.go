package codec

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/GriffinCanCode/courier/media"
)

// Form parses and serializes application/x-www-form-urlencoded bodies.
type Form struct{}

// Parse decodes a query string into url.Values. Malformed pairs are skipped.
func (Form) Parse(body []byte) (any, error) {
	values, _ := url.ParseQuery(string(StripBOM(body)))
	return values, nil
}

// Serialize encodes a mapping as a query string.
func (Form) Serialize(payload any) ([]byte, error) {
	switch p := payload.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return []byte(p.Encode()), nil
	case map[string][]string:
		return []byte(url.Values(p).Encode()), nil
	case map[string]string:
		values := make(url.Values, len(p))
		for k, v := range p {
			values.Set(k, v)
		}
		return []byte(values.Encode()), nil
	case map[string]any:
		values := make(url.Values, len(p))
		for k, v := range p {
			addFormValue(values, k, v)
		}
		return []byte(values.Encode()), nil
	case string:
		return []byte(p), nil
	case []byte:
		return p, nil
	default:
		return nil, newSerializeError(ErrSerialize, media.Form, fmt.Errorf("unsupported payload type %T", payload))
	}
}

func addFormValue(values url.Values, key string, v any) {
	rv := reflect.ValueOf(v)
	if v != nil && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
		if b, ok := v.([]byte); ok {
			values.Add(key, string(b))
			return
		}
		for i := 0; i < rv.Len(); i++ {
			values.Add(key, string(Stringify(rv.Index(i).Interface())))
		}
		return
	}
	values.Add(key, string(Stringify(v)))
}
