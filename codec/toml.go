package codec

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/courier/media"
)

// TOML parses and serializes application/toml bodies.
type TOML struct{}

// Parse decodes body into a map[string]any. An empty body yields nil.
func (TOML) Parse(body []byte) (any, error) {
	body = StripBOM(body)
	if len(body) == 0 {
		return nil, nil
	}
	var parsed map[string]any
	if err := toml.Unmarshal(body, &parsed); err != nil {
		return nil, newParseError(ErrTOMLParse, media.TOML, err)
	}
	return parsed, nil
}

// Decode unmarshals body into v.
func (TOML) Decode(body []byte, v any) error {
	if err := toml.Unmarshal(StripBOM(body), v); err != nil {
		return newParseError(ErrTOMLParse, media.TOML, err)
	}
	return nil
}

// Serialize encodes payload as TOML. The payload must be a table.
func (TOML) Serialize(payload any) ([]byte, error) {
	data, err := toml.Marshal(payload)
	if err != nil {
		return nil, newSerializeError(ErrSerialize, media.TOML, err)
	}
	return data, nil
}
