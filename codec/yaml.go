package codec

import (
	"github.com/goccy/go-yaml"

	"github.com/GriffinCanCode/courier/media"
)

// YAML parses and serializes application/x-yaml bodies.
type YAML struct{}

// Parse decodes body into maps, slices and scalars. An empty body yields nil.
func (YAML) Parse(body []byte) (any, error) {
	body = StripBOM(body)
	if len(body) == 0 {
		return nil, nil
	}
	var parsed any
	if err := yaml.Unmarshal(body, &parsed); err != nil {
		return nil, newParseError(ErrYAMLParse, media.YAML, err)
	}
	return parsed, nil
}

// Decode unmarshals body into v.
func (YAML) Decode(body []byte, v any) error {
	if err := yaml.Unmarshal(StripBOM(body), v); err != nil {
		return newParseError(ErrYAMLParse, media.YAML, err)
	}
	return nil
}

// Serialize encodes payload as YAML.
func (YAML) Serialize(payload any) ([]byte, error) {
	data, err := yaml.Marshal(payload)
	if err != nil {
		return nil, newSerializeError(ErrSerialize, media.YAML, err)
	}
	return data, nil
}
