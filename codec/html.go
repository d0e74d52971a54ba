package codec

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/GriffinCanCode/courier/media"
)

// HTML parses text/html bodies into a *goquery.Document, or an *html.Node
// for XPath queries when Node is set.
type HTML struct {
	// Node returns *html.Node (htmlquery) instead of *goquery.Document.
	Node bool
	// Policy sanitizes the markup before parsing when non-nil.
	Policy *bluemonday.Policy
}

// NewSanitizedHTML returns an HTML codec that strips markup outside the
// user-generated-content policy before parsing.
func NewSanitizedHTML() *HTML {
	return &HTML{Policy: bluemonday.UGCPolicy()}
}

// Parse decodes body into a document.
func (c *HTML) Parse(body []byte) (any, error) {
	body = StripBOM(body)
	if c.Policy != nil {
		body = c.Policy.SanitizeBytes(body)
	}

	if c.Node {
		node, err := htmlquery.Parse(bytes.NewReader(body))
		if err != nil {
			return nil, newParseError(ErrHTMLParse, media.HTML, err)
		}
		return node, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, newParseError(ErrHTMLParse, media.HTML, err)
	}
	return doc, nil
}

// Serialize renders a document, selection or node back to markup.
func (c *HTML) Serialize(payload any) ([]byte, error) {
	switch p := payload.(type) {
	case *goquery.Document:
		out, err := p.Html()
		if err != nil {
			return nil, newSerializeError(ErrSerialize, media.HTML, err)
		}
		return []byte(out), nil
	case *goquery.Selection:
		out, err := goquery.OuterHtml(p)
		if err != nil {
			return nil, newSerializeError(ErrSerialize, media.HTML, err)
		}
		return []byte(out), nil
	case *html.Node:
		return []byte(htmlquery.OutputHTML(p, true)), nil
	case string:
		return []byte(p), nil
	case []byte:
		return p, nil
	default:
		return nil, newSerializeError(ErrSerialize, media.HTML, fmt.Errorf("unsupported payload type %T", payload))
	}
}
