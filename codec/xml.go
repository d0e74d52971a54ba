package codec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html/charset"

	"github.com/GriffinCanCode/courier/media"
)

// XMLOptions configures XML parsing.
type XMLOptions struct {
	// Namespace is applied to elements that carry no namespace of their own.
	Namespace string
	// Lenient accepts HTML-style input: unknown entities, unclosed tags.
	Lenient bool
}

// XML parses bodies into an XMLNode tree and serializes payload trees.
type XML struct {
	opts XMLOptions
}

// NewXML returns an XML codec.
func NewXML(opts XMLOptions) *XML {
	return &XML{opts: opts}
}

// XMLNode is a generic XML element.
type XMLNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []*XMLNode `xml:",any"`
}

// Name returns the local element name.
func (n *XMLNode) Name() string {
	return n.XMLName.Local
}

// Value returns the element text with surrounding whitespace removed.
func (n *XMLNode) Value() string {
	return strings.TrimSpace(n.Text)
}

// Attr returns the value of the named attribute, or "" when absent.
func (n *XMLNode) Attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// Child returns the first child with the given local name.
func (n *XMLNode) Child(name string) *XMLNode {
	for _, c := range n.Children {
		if c.XMLName.Local == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every child with the given local name.
func (n *XMLNode) ChildrenNamed(name string) []*XMLNode {
	var out []*XMLNode
	for _, c := range n.Children {
		if c.XMLName.Local == name {
			out = append(out, c)
		}
	}
	return out
}

// Field is one named value emitted by a FieldEnumerator.
type Field struct {
	Name  string
	Value any
}

// FieldEnumerator is implemented by objects that serialize to XML. The
// element is named by XMLElementName and gets one child per field, in order.
type FieldEnumerator interface {
	XMLElementName() string
	XMLFields() []Field
}

func (c *XML) decoder(body []byte) *xml.Decoder {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = charset.NewReaderLabel
	dec.DefaultSpace = c.opts.Namespace
	if c.opts.Lenient {
		dec.Strict = false
		dec.AutoClose = xml.HTMLAutoClose
		dec.Entity = xml.HTMLEntity
	}
	return dec
}

// Parse decodes body into an *XMLNode. An empty body yields nil.
func (c *XML) Parse(body []byte) (any, error) {
	body = StripBOM(body)
	if len(body) == 0 {
		return nil, nil
	}

	dec := c.decoder(body)
	var root XMLNode
	if err := dec.Decode(&root); err != nil {
		return nil, newParseError(ErrXMLParse, media.XML, err)
	}
	if err := expectEnd(dec); err != nil {
		return nil, newParseError(ErrXMLParse, media.XML, err)
	}
	return &root, nil
}

// expectEnd fails when anything other than whitespace, comments or
// processing instructions follows the root element.
func expectEnd(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return fmt.Errorf("unexpected element <%s> after root", t.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return errors.New("unexpected text after root element")
			}
		}
	}
}

// Decode unmarshals body into v.
func (c *XML) Decode(body []byte, v any) error {
	if err := c.decoder(StripBOM(body)).Decode(v); err != nil {
		return newParseError(ErrXMLParse, media.XML, err)
	}
	return nil
}

// Serialize walks payload and emits an XML document. Scalars become text,
// maps and slices become an <array> element whose children are named after
// their keys (numeric keys as child-N), and FieldEnumerators become an
// element named after the object. Anything else is rejected.
func (c *XML) Serialize(payload any) ([]byte, error) {
	if node, ok := payload.(*XMLNode); ok {
		data, err := xml.Marshal(node)
		if err != nil {
			return nil, newSerializeError(ErrXMLSerialize, media.XML, err)
		}
		return append([]byte(xml.Header), data...), nil
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	w := &xmlWriter{enc: xml.NewEncoder(&buf)}

	var err error
	if obj, ok := payload.(FieldEnumerator); ok {
		err = w.object(obj)
	} else {
		err = w.element("response", payload)
	}
	if err == nil {
		err = w.enc.Flush()
	}
	if err != nil {
		return nil, newSerializeError(ErrXMLSerialize, media.XML, err)
	}
	return buf.Bytes(), nil
}

type xmlWriter struct {
	enc *xml.Encoder
}

// element writes <name>value</name>.
func (w *xmlWriter) element(name string, value any) error {
	if !validXMLName(name) {
		return fmt.Errorf("invalid element name %q", name)
	}
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := w.enc.EncodeToken(start); err != nil {
		return err
	}
	if err := w.value(value); err != nil {
		return err
	}
	return w.enc.EncodeToken(start.End())
}

// value writes the content of the current element.
func (w *xmlWriter) value(v any) error {
	switch t := v.(type) {
	case nil:
		return nil
	case FieldEnumerator:
		return w.object(t)
	case bool:
		if t {
			return w.enc.EncodeToken(xml.CharData("TRUE"))
		}
		return w.enc.EncodeToken(xml.CharData("FALSE"))
	case string:
		return w.enc.EncodeToken(xml.CharData(t))
	case []byte:
		return w.enc.EncodeToken(xml.CharData(t))
	case fmt.Stringer:
		return w.enc.EncodeToken(xml.CharData(t.String()))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return w.enc.EncodeToken(xml.CharData(fmt.Sprint(v)))
	case reflect.Slice, reflect.Array:
		return w.array(rv)
	case reflect.Map:
		return w.mapping(rv)
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return w.value(rv.Elem().Interface())
	default:
		return fmt.Errorf("type %T does not implement FieldEnumerator", v)
	}
}

func (w *xmlWriter) object(obj FieldEnumerator) error {
	name := obj.XMLElementName()
	if !validXMLName(name) {
		return fmt.Errorf("invalid element name %q", name)
	}
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := w.enc.EncodeToken(start); err != nil {
		return err
	}
	for _, f := range obj.XMLFields() {
		if err := w.element(f.Name, f.Value); err != nil {
			return err
		}
	}
	return w.enc.EncodeToken(start.End())
}

func (w *xmlWriter) array(rv reflect.Value) error {
	start := xml.StartElement{Name: xml.Name{Local: "array"}}
	if err := w.enc.EncodeToken(start); err != nil {
		return err
	}
	for i := 0; i < rv.Len(); i++ {
		if err := w.element("child-"+strconv.Itoa(i), rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return w.enc.EncodeToken(start.End())
}

func (w *xmlWriter) mapping(rv reflect.Value) error {
	keys := make([]string, 0, rv.Len())
	values := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := fmt.Sprint(iter.Key().Interface())
		keys = append(keys, k)
		values[k] = iter.Value().Interface()
	}
	sort.Strings(keys)

	start := xml.StartElement{Name: xml.Name{Local: "array"}}
	if err := w.enc.EncodeToken(start); err != nil {
		return err
	}
	for _, k := range keys {
		name := k
		if isNumericKey(k) {
			name = "child-" + k
		}
		if err := w.element(name, values[k]); err != nil {
			return err
		}
	}
	return w.enc.EncodeToken(start.End())
}

// isNumericKey reports whether k is a plain decimal number such as 3, -2 or
// 1.5. Spellings ParseFloat also accepts, like NaN, Inf or 0x1p3, are not.
func isNumericKey(k string) bool {
	k = strings.TrimPrefix(k, "-")
	whole, frac, dotted := strings.Cut(k, ".")
	if !isDigits(whole) {
		return false
	}
	return !dotted || isDigits(frac)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func validXMLName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}
