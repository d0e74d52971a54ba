package codec

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	ErrJSONParse     = errors.New("unable to parse response as JSON")
	ErrXMLParse      = errors.New("unable to parse response as XML")
	ErrCSVParse      = errors.New("unable to parse response as CSV")
	ErrYAMLParse     = errors.New("unable to parse response as YAML")
	ErrTOMLParse     = errors.New("unable to parse response as TOML")
	ErrMsgpackParse  = errors.New("unable to parse response as MessagePack")
	ErrBSONParse     = errors.New("unable to parse response as BSON")
	ErrProtobufParse = errors.New("unable to parse response as protobuf")
	ErrHTMLParse     = errors.New("unable to parse response as HTML")

	// ErrSerialize indicates a payload could not be encoded.
	ErrSerialize = errors.New("unable to serialize payload")

	// ErrXMLSerialize indicates the payload tree cannot be expressed as XML.
	ErrXMLSerialize = errors.New("unable to serialize payload as XML")
)

// ParseError represents a codec failure while parsing a body.
type ParseError struct {
	Err   error  // Underlying sentinel error (ErrJSONParse, ...)
	Mime  string // Content type the codec handles
	Cause error  // Original error from the decoder, may be nil
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SerializeError represents a codec failure while encoding a payload.
type SerializeError struct {
	Err   error
	Mime  string
	Cause error
}

func (e *SerializeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %v", e.Err.Error(), e.Mime, e.Cause)
	}
	return fmt.Sprintf("%s (%s)", e.Err.Error(), e.Mime)
}

func (e *SerializeError) Unwrap() error {
	return e.Err
}

func newParseError(sentinel error, mime string, cause error) error {
	return &ParseError{Err: sentinel, Mime: mime, Cause: cause}
}

func newSerializeError(sentinel error, mime string, cause error) error {
	return &SerializeError{Err: sentinel, Mime: mime, Cause: cause}
}
