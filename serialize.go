package courier

import (
	"github.com/GriffinCanCode/courier/codec"
)

// SerializeMode controls whether request payloads pass through a codec.
type SerializeMode int

const (
	// SerializeSmart serializes structured payloads and sends scalars
	// (strings, byte slices, bools, numbers) unmodified.
	SerializeSmart SerializeMode = iota
	// SerializeAlways runs every payload through the codec.
	SerializeAlways
	// SerializeNever sends the payload's string form.
	SerializeNever
)

func (m SerializeMode) String() string {
	switch m {
	case SerializeSmart:
		return "smart"
	case SerializeAlways:
		return "always"
	case SerializeNever:
		return "never"
	default:
		return "unknown"
	}
}

// AnyType registers a payload serializer for every content type.
const AnyType = "*"

// PayloadSerializerFunc turns a payload into a request body.
type PayloadSerializerFunc func(payload any) ([]byte, error)

// serializePayload picks the encoding for an outgoing payload. A nil payload
// has no body. Otherwise the mode is consulted, then per-request serializers
// (exact type, then AnyType), then the registry.
func serializePayload(reg *codec.Registry, mode SerializeMode, contentType string, serializers map[string]PayloadSerializerFunc, payload any) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}

	switch {
	case mode == SerializeNever:
		return codec.Stringify(payload), nil
	case mode == SerializeSmart && codec.IsScalar(payload):
		return codec.Stringify(payload), nil
	}

	if fn, ok := serializers[contentType]; ok && fn != nil {
		return fn(payload)
	}
	if fn, ok := serializers[AnyType]; ok && fn != nil {
		return fn(payload)
	}

	return reg.Get(contentType).Serialize(payload)
}
