package courier

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/courier/codec"
	"github.com/GriffinCanCode/courier/internal/bodyenc"
	"github.com/GriffinCanCode/courier/media"
	"github.com/GriffinCanCode/courier/transport"
	"github.com/gabriel-vasile/mimetype"
)

// Response is a parsed HTTP response.
type Response struct {
	Code        int
	Headers     Headers
	RawHeaders  string
	RawBody     []byte
	Body        any
	ContentType media.ContentType
	Request     *Request

	// TraceID is set when the client traces requests
	TraceID string

	// body after content decoding and transcoding, as handed to the codec
	decoded []byte
	plan    bodyPlan
}

// newResponse builds a Response from the transport result. A nil Response
// means the header block was unusable; a non-nil Response with an error
// means the body failed to parse.
func newResponse(r *Request, tresp *transport.Response) (*Response, error) {
	code, err := ParseStatusCode(tresp.HeaderBlock)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Code:       code,
		Headers:    ParseHeaders(tresp.HeaderBlock),
		RawHeaders: tresp.HeaderBlock,
		RawBody:    tresp.Body,
		Request:    r,
	}
	resp.ContentType = media.Interpret(resp.Headers.Get("Content-Type"))

	body, err := resp.prepare(r)
	if err != nil {
		return resp, err
	}
	resp.decoded = body

	resp.plan = planBody(r.client.registry, resp.ContentType, r.expected, r.parse, r.autoParse)
	resp.Body, err = resp.plan.run(body)
	return resp, err
}

// prepare undoes gzip content coding, sniffs a missing type and transcodes
// text to UTF-8 when the request asked for it.
func (resp *Response) prepare(r *Request) ([]byte, error) {
	body := resp.RawBody

	if strings.EqualFold(resp.Headers.Get("Content-Encoding"), "gzip") && bodyenc.IsGzip(body) {
		plain, err := bodyenc.Gunzip(body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode gzip body: %w", err)
		}
		body = plain
	}

	if r.sniff && resp.ContentType.Base == "" && len(body) > 0 {
		resp.ContentType = media.Interpret(mimetype.Detect(body).String())
	}

	if r.transcode && len(body) > 0 && (resp.ContentType.CharsetDeclared || resp.ContentType.IsText()) {
		label := ""
		if resp.ContentType.CharsetDeclared {
			label = resp.ContentType.Charset
		}
		utf8, err := bodyenc.ToUTF8(body, label)
		if err != nil {
			return nil, err
		}
		body = utf8
	}

	return body, nil
}

// HasErrors reports whether the status code is 400 or above.
func (resp *Response) HasErrors() bool {
	return resp.Code >= 400
}

// HasBody reports whether the response carried a body.
func (resp *Response) HasBody() bool {
	return len(resp.RawBody) > 0
}

// String returns the raw body as text.
func (resp *Response) String() string {
	return string(resp.RawBody)
}

// Decode decodes the body into v with the codec chosen for this response.
// It fails with ErrNoDecoder when that codec has no typed decoding, when
// auto-parsing is off, or when a custom parse function was used.
func (resp *Response) Decode(v any) error {
	dec, ok := resp.plan.codec.(codec.Decoder)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoDecoder, resp.plan.mime)
	}
	return dec.Decode(resp.decoded, v)
}
