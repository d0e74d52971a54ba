package codec

// Codec pairs parse and serialize for one content type.
type Codec interface {
	// Parse decodes a response body into structured data.
	Parse(body []byte) (any, error)

	// Serialize encodes a request payload into a body.
	Serialize(payload any) ([]byte, error)
}

// Decoder is implemented by codecs that can decode into a caller-supplied value.
type Decoder interface {
	Decode(body []byte, v any) error
}

// Func adapts plain functions into a Codec. A nil function behaves like
// Passthrough.
type Func struct {
	ParseFunc     func(body []byte) (any, error)
	SerializeFunc func(payload any) ([]byte, error)
}

// Parse calls ParseFunc.
func (f Func) Parse(body []byte) (any, error) {
	if f.ParseFunc == nil {
		return Passthrough{}.Parse(body)
	}
	return f.ParseFunc(body)
}

// Serialize calls SerializeFunc.
func (f Func) Serialize(payload any) ([]byte, error) {
	if f.SerializeFunc == nil {
		return Passthrough{}.Serialize(payload)
	}
	return f.SerializeFunc(payload)
}
