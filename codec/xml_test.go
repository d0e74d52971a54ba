package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	Name   string
	Age    int
	secret string
}

func (p person) XMLElementName() string { return "person" }

func (p person) XMLFields() []Field {
	return []Field{{Name: "name", Value: p.Name}, {Name: "age", Value: p.Age}}
}

func TestXMLParse(t *testing.T) {
	c := NewXML(XMLOptions{})

	t.Run("empty body", func(t *testing.T) {
		parsed, err := c.Parse([]byte(""))
		require.NoError(t, err)
		assert.Nil(t, parsed)
	})

	t.Run("tree", func(t *testing.T) {
		parsed, err := c.Parse([]byte(`<root a="1"><item>x</item><item> y </item><other/></root>`))
		require.NoError(t, err)

		root := parsed.(*XMLNode)
		assert.Equal(t, "root", root.Name())
		assert.Equal(t, "1", root.Attr("a"))
		assert.Equal(t, "", root.Attr("missing"))

		items := root.ChildrenNamed("item")
		require.Len(t, items, 2)
		assert.Equal(t, "x", items[0].Value())
		assert.Equal(t, "y", items[1].Value())
		assert.NotNil(t, root.Child("other"))
		assert.Nil(t, root.Child("nope"))
	})

	t.Run("byte order mark", func(t *testing.T) {
		parsed, err := c.Parse(append([]byte{0xEF, 0xBB, 0xBF}, "<a>1</a>"...))
		require.NoError(t, err)
		assert.Equal(t, "1", parsed.(*XMLNode).Value())
	})

	t.Run("malformed", func(t *testing.T) {
		for _, body := range []string{"<root>", "not xml", "<a/><b/>", "<a/>trailing"} {
			_, err := c.Parse([]byte(body))
			assert.True(t, errors.Is(err, ErrXMLParse), body)
		}
	})

	t.Run("declared charset", func(t *testing.T) {
		body := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><a>caf\xe9</a>")
		parsed, err := c.Parse(body)
		require.NoError(t, err)
		assert.Equal(t, "café", parsed.(*XMLNode).Value())
	})
}

func TestXMLOptions(t *testing.T) {
	t.Run("namespace", func(t *testing.T) {
		c := NewXML(XMLOptions{Namespace: "urn:courier"})
		parsed, err := c.Parse([]byte("<a/>"))
		require.NoError(t, err)
		assert.Equal(t, "urn:courier", parsed.(*XMLNode).XMLName.Space)
	})

	t.Run("lenient", func(t *testing.T) {
		body := []byte("<p>a &nbsp; <br> b</p>")

		_, err := NewXML(XMLOptions{}).Parse(body)
		assert.Error(t, err)

		parsed, err := NewXML(XMLOptions{Lenient: true}).Parse(body)
		require.NoError(t, err)
		assert.Equal(t, "p", parsed.(*XMLNode).Name())
	})
}

func TestXMLDecode(t *testing.T) {
	var out struct {
		Name string `xml:"name"`
	}
	require.NoError(t, NewXML(XMLOptions{}).Decode([]byte("<user><name>ada</name></user>"), &out))
	assert.Equal(t, "ada", out.Name)
}

func TestXMLSerialize(t *testing.T) {
	c := NewXML(XMLOptions{})
	header := `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

	t.Run("scalar", func(t *testing.T) {
		out, err := c.Serialize("hello")
		require.NoError(t, err)
		assert.Equal(t, header+"<response>hello</response>", string(out))
	})

	t.Run("booleans", func(t *testing.T) {
		out, err := c.Serialize([]any{true, false})
		require.NoError(t, err)
		assert.Equal(t, header+"<response><array><child-0>TRUE</child-0><child-1>FALSE</child-1></array></response>", string(out))
	})

	t.Run("map with nested list", func(t *testing.T) {
		out, err := c.Serialize(map[string]any{"name": "x", "list": []string{"a", "b"}})
		require.NoError(t, err)
		assert.Equal(t, header+"<response><array><list><array><child-0>a</child-0><child-1>b</child-1></array></list><name>x</name></array></response>", string(out))
	})

	t.Run("numeric keys", func(t *testing.T) {
		out, err := c.Serialize(map[int]string{1: "a"})
		require.NoError(t, err)
		assert.Equal(t, header+"<response><array><child-1>a</child-1></array></response>", string(out))
	})

	t.Run("decimal keys only", func(t *testing.T) {
		out, err := c.Serialize(map[string]any{"NaN": "a", "Inf": "b", "2": "c", "1.5": "d", "-3": "e"})
		require.NoError(t, err)
		assert.Equal(t, header+"<response><array><child--3>e</child--3><child-1.5>d</child-1.5><child-2>c</child-2><Inf>b</Inf><NaN>a</NaN></array></response>", string(out))
	})

	t.Run("hex float key is not numeric", func(t *testing.T) {
		_, err := c.Serialize(map[string]any{"0x1p3": "a"})
		assert.ErrorIs(t, err, ErrXMLSerialize)
	})

	t.Run("object root", func(t *testing.T) {
		out, err := c.Serialize(person{Name: "Ada", Age: 36, secret: "hidden"})
		require.NoError(t, err)
		assert.Equal(t, header+"<person><name>Ada</name><age>36</age></person>", string(out))
	})

	t.Run("nested object", func(t *testing.T) {
		out, err := c.Serialize(map[string]any{"owner": person{Name: "Ada", Age: 36}})
		require.NoError(t, err)
		assert.Equal(t, header+"<response><array><owner><person><name>Ada</name><age>36</age></person></owner></array></response>", string(out))
	})

	t.Run("escapes text", func(t *testing.T) {
		out, err := c.Serialize("a<b")
		require.NoError(t, err)
		assert.Equal(t, header+"<response>a&lt;b</response>", string(out))
	})

	t.Run("struct without enumerator", func(t *testing.T) {
		_, err := c.Serialize(struct{ X int }{X: 1})
		assert.True(t, errors.Is(err, ErrXMLSerialize))
	})

	t.Run("invalid element name", func(t *testing.T) {
		_, err := c.Serialize(map[string]string{"bad key": "v"})
		assert.True(t, errors.Is(err, ErrXMLSerialize))
	})

	t.Run("node round trip", func(t *testing.T) {
		parsed, err := c.Parse([]byte(`<root><item>x</item></root>`))
		require.NoError(t, err)

		out, err := c.Serialize(parsed)
		require.NoError(t, err)

		again, err := c.Parse(out)
		require.NoError(t, err)
		assert.Equal(t, "x", again.(*XMLNode).Child("item").Value())
	})
}
