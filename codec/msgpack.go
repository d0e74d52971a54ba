package codec

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/GriffinCanCode/courier/media"
)

// Msgpack parses and serializes application/msgpack bodies.
type Msgpack struct{}

// Parse decodes body into maps, slices and scalars. An empty body yields nil.
func (Msgpack) Parse(body []byte) (any, error) {
	if len(body) == 0 {
		return nil, nil
	}
	var parsed any
	if err := msgpack.Unmarshal(body, &parsed); err != nil {
		return nil, newParseError(ErrMsgpackParse, media.Msgpack, err)
	}
	return parsed, nil
}

// Decode unmarshals body into v.
func (Msgpack) Decode(body []byte, v any) error {
	if err := msgpack.Unmarshal(body, v); err != nil {
		return newParseError(ErrMsgpackParse, media.Msgpack, err)
	}
	return nil
}

// Serialize encodes payload as MessagePack.
func (Msgpack) Serialize(payload any) ([]byte, error) {
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return nil, newSerializeError(ErrSerialize, media.Msgpack, err)
	}
	return data, nil
}
