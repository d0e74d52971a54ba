package codec

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/GriffinCanCode/courier/media"
)

// BSON parses and serializes application/bson bodies.
type BSON struct{}

// Parse decodes body into a bson.M. An empty body yields nil.
func (BSON) Parse(body []byte) (any, error) {
	if len(body) == 0 {
		return nil, nil
	}
	var parsed bson.M
	if err := bson.Unmarshal(body, &parsed); err != nil {
		return nil, newParseError(ErrBSONParse, media.BSON, err)
	}
	return parsed, nil
}

// Decode unmarshals body into v.
func (BSON) Decode(body []byte, v any) error {
	if err := bson.Unmarshal(body, v); err != nil {
		return newParseError(ErrBSONParse, media.BSON, err)
	}
	return nil
}

// Serialize encodes payload as a BSON document.
func (BSON) Serialize(payload any) ([]byte, error) {
	data, err := bson.Marshal(payload)
	if err != nil {
		return nil, newSerializeError(ErrSerialize, media.BSON, err)
	}
	return data, nil
}
