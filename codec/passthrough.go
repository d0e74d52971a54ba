package codec

import (
	"fmt"
	"strconv"
)

// Passthrough returns bodies unchanged as text and stringifies payloads.
type Passthrough struct{}

// Parse returns body as a string.
func (Passthrough) Parse(body []byte) (any, error) {
	return string(body), nil
}

// Serialize stringifies payload.
func (Passthrough) Serialize(payload any) ([]byte, error) {
	return Stringify(payload), nil
}

// Stringify renders a payload as bytes without any content-type encoding.
func Stringify(payload any) []byte {
	switch v := payload.(type) {
	case nil:
		return nil
	case []byte:
		return v
	case string:
		return []byte(v)
	case bool:
		return []byte(strconv.FormatBool(v))
	case fmt.Stringer:
		return []byte(v.String())
	default:
		return []byte(fmt.Sprint(v))
	}
}

// IsScalar reports whether payload is a string, byte slice, bool or number.
func IsScalar(payload any) bool {
	switch payload.(type) {
	case string, []byte, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}
