package codec

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"

	"github.com/GriffinCanCode/courier/media"
)

// Protobuf parses application/x-protobuf bodies into messages built by New.
// It has no generic form, so it is never installed by default.
type Protobuf struct {
	New func() proto.Message
}

// Parse decodes body into a fresh message from New.
func (c Protobuf) Parse(body []byte) (any, error) {
	if c.New == nil {
		return nil, newParseError(ErrProtobufParse, media.Protobuf, errors.New("no message constructor"))
	}
	msg := c.New()
	if err := proto.Unmarshal(body, msg); err != nil {
		return nil, newParseError(ErrProtobufParse, media.Protobuf, err)
	}
	return msg, nil
}

// Decode unmarshals body into v, which must be a proto.Message.
func (c Protobuf) Decode(body []byte, v any) error {
	msg, ok := v.(proto.Message)
	if !ok {
		return newParseError(ErrProtobufParse, media.Protobuf, fmt.Errorf("%T is not a proto.Message", v))
	}
	if err := proto.Unmarshal(body, msg); err != nil {
		return newParseError(ErrProtobufParse, media.Protobuf, err)
	}
	return nil
}

// Serialize encodes a proto.Message payload.
func (c Protobuf) Serialize(payload any) ([]byte, error) {
	msg, ok := payload.(proto.Message)
	if !ok {
		return nil, newSerializeError(ErrSerialize, media.Protobuf, fmt.Errorf("%T is not a proto.Message", payload))
	}
	data, err := proto.Marshal(msg)
	if err != nil {
		return nil, newSerializeError(ErrSerialize, media.Protobuf, err)
	}
	return data, nil
}
