package codec

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormRoundTrip(t *testing.T) {
	c := Form{}
	original := url.Values{
		"a": {"1"},
		"b": {"x y", "z&w"},
	}

	data, err := c.Serialize(original)
	require.NoError(t, err)

	parsed, err := c.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestFormSerialize(t *testing.T) {
	c := Form{}

	tests := []struct {
		name    string
		payload any
		want    string
	}{
		{name: "string map", payload: map[string]string{"b": "2", "a": "1"}, want: "a=1&b=2"},
		{name: "multi map", payload: map[string][]string{"a": {"1", "2"}}, want: "a=1&a=2"},
		{name: "any map", payload: map[string]any{"n": []int{1, 2}, "ok": true}, want: "n=1&n=2&ok=true"},
		{name: "preencoded", payload: "a=1", want: "a=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := c.Serialize(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}

	_, err := c.Serialize(42)
	assert.True(t, errors.Is(err, ErrSerialize))
}

func TestFormParseSkipsMalformedPairs(t *testing.T) {
	parsed, err := Form{}.Parse([]byte("a=1&b=%zz&c=3"))
	require.NoError(t, err)

	values := parsed.(url.Values)
	assert.Equal(t, "1", values.Get("a"))
	assert.Equal(t, "3", values.Get("c"))
	assert.False(t, values.Has("b"))
}
