package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/net/html"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestYAML(t *testing.T) {
	c := YAML{}

	parsed, err := c.Parse(nil)
	require.NoError(t, err)
	assert.Nil(t, parsed)

	data, err := c.Serialize(map[string]any{"name": "courier", "tags": []any{"a", "b"}})
	require.NoError(t, err)

	parsed, err = c.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "courier", "tags": []any{"a", "b"}}, parsed)

	_, err = c.Parse([]byte("key: [unclosed"))
	assert.True(t, errors.Is(err, ErrYAMLParse))

	var out struct {
		Name string `yaml:"name"`
	}
	require.NoError(t, c.Decode([]byte("name: ada\n"), &out))
	assert.Equal(t, "ada", out.Name)
}

func TestTOML(t *testing.T) {
	c := TOML{}

	data, err := c.Serialize(map[string]any{"name": "courier"})
	require.NoError(t, err)

	parsed, err := c.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "courier"}, parsed)

	_, err = c.Parse([]byte("= broken"))
	assert.True(t, errors.Is(err, ErrTOMLParse))
}

func TestMsgpack(t *testing.T) {
	c := Msgpack{}

	data, err := c.Serialize(map[string]any{"name": "courier"})
	require.NoError(t, err)

	parsed, err := c.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "courier"}, parsed)

	_, err = c.Parse([]byte{0xc1})
	assert.True(t, errors.Is(err, ErrMsgpackParse))
}

func TestBSON(t *testing.T) {
	c := BSON{}

	data, err := c.Serialize(bson.M{"name": "courier"})
	require.NoError(t, err)

	parsed, err := c.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"name": "courier"}, parsed)

	_, err = c.Parse([]byte{0x01, 0x02})
	assert.True(t, errors.Is(err, ErrBSONParse))
}

func TestProtobuf(t *testing.T) {
	c := Protobuf{New: func() proto.Message { return &wrapperspb.StringValue{} }}

	data, err := c.Serialize(wrapperspb.String("hello"))
	require.NoError(t, err)

	parsed, err := c.Parse(data)
	require.NoError(t, err)
	assert.True(t, proto.Equal(wrapperspb.String("hello"), parsed.(proto.Message)))

	var decoded wrapperspb.StringValue
	require.NoError(t, c.Decode(data, &decoded))
	assert.Equal(t, "hello", decoded.GetValue())

	_, err = Protobuf{}.Parse(data)
	assert.True(t, errors.Is(err, ErrProtobufParse))

	_, err = c.Serialize("not a message")
	assert.True(t, errors.Is(err, ErrSerialize))
}

func TestHTML(t *testing.T) {
	body := []byte(`<html><body><p class="x">hi</p><script>alert(1)</script></body></html>`)

	t.Run("document", func(t *testing.T) {
		parsed, err := (&HTML{}).Parse(body)
		require.NoError(t, err)
		doc := parsed.(*goquery.Document)
		assert.Equal(t, "hi", doc.Find("p.x").Text())
		assert.Equal(t, 1, doc.Find("script").Length())
	})

	t.Run("sanitized", func(t *testing.T) {
		parsed, err := NewSanitizedHTML().Parse(body)
		require.NoError(t, err)
		doc := parsed.(*goquery.Document)
		assert.Equal(t, 0, doc.Find("script").Length())
		assert.Equal(t, "hi", doc.Find("p").Text())
	})

	t.Run("node", func(t *testing.T) {
		parsed, err := (&HTML{Node: true}).Parse(body)
		require.NoError(t, err)
		node := htmlquery.FindOne(parsed.(*html.Node), "//p")
		require.NotNil(t, node)
		assert.Equal(t, "hi", htmlquery.InnerText(node))

		out, err := (&HTML{}).Serialize(node)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(out), "<p"))
	})
}
