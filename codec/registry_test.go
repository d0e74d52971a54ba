package codec

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/courier/media"
)

func TestRegistryGetFallsBackToPassthrough(t *testing.T) {
	reg := NewRegistry()

	c := reg.Get("application/unknown")
	require.NotNil(t, c)

	parsed, err := c.Parse([]byte("raw <body>"))
	require.NoError(t, err)
	assert.Equal(t, "raw <body>", parsed)

	empty := reg.Get("")
	parsed, err = empty.Parse([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "x", parsed)
}

func TestRegistryRegisterIfAbsent(t *testing.T) {
	reg := NewRegistry()
	first := NewJSON(JSONOptions{})
	second := NewJSON(JSONOptions{UseNumber: true})

	assert.True(t, reg.RegisterIfAbsent(media.JSON, first))
	assert.False(t, reg.RegisterIfAbsent(media.JSON, second))
	assert.Same(t, first, reg.Get(media.JSON))
}

func TestRegistryRegisterOverwrites(t *testing.T) {
	reg := NewRegistry()
	first := NewCSV()
	second := &CSV{Comma: ';'}

	reg.Register(media.CSV, first)
	reg.Register(media.CSV, second)
	assert.Same(t, second, reg.Get(media.CSV))
	assert.True(t, reg.Has(media.CSV))
	assert.False(t, reg.Has(media.XML))
}

func TestRegistryIgnoresNilCodec(t *testing.T) {
	reg := NewRegistry()
	reg.Register(media.JSON, nil)
	assert.False(t, reg.RegisterIfAbsent(media.JSON, nil))
	assert.False(t, reg.Has(media.JSON))
}

func TestRegistryInstall(t *testing.T) {
	t.Run("registers built-ins", func(t *testing.T) {
		reg := NewRegistry()
		reg.Install()
		assert.Equal(t, []string{media.JSON, media.Form, media.XML, media.CSV}, reg.Types())
	})

	t.Run("does not clobber earlier registrations", func(t *testing.T) {
		reg := NewRegistry()
		custom := Func{}
		reg.Register(media.JSON, custom)
		reg.Install()
		assert.Equal(t, custom, reg.Get(media.JSON))
	})

	t.Run("idempotent", func(t *testing.T) {
		reg := NewRegistry()
		reg.Install()
		jsonCodec := reg.Get(media.JSON)
		reg.Install()
		reg.Install()
		assert.Len(t, reg.Types(), 4)
		assert.Same(t, jsonCodec, reg.Get(media.JSON))
	})

	t.Run("extended", func(t *testing.T) {
		reg := NewRegistry()
		reg.InstallExtended()
		reg.InstallExtended()
		assert.True(t, reg.Has(media.YAML))
		assert.True(t, reg.Has(media.TOML))
		assert.True(t, reg.Has(media.Msgpack))
		assert.True(t, reg.Has(media.BSON))
		assert.False(t, reg.Has(media.JSON))
	})
}

func TestDefaultRegistry(t *testing.T) {
	reg := Default()
	assert.Same(t, reg, Default())
	assert.True(t, reg.Has(media.JSON))
	assert.True(t, reg.Has(media.CSV))
}

func TestRegistryConcurrentAccess(t *testing.T) {
	reg := NewRegistry()
	reg.Install()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			reg.Register(fmt.Sprintf("application/x-test-%d", i), Passthrough{})
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.NotNil(t, reg.Get(media.JSON))
				reg.Has("application/x-test-0")
			}
		}()
	}
	wg.Wait()

	assert.Len(t, reg.Types(), 4+16)
}

func TestPassthrough(t *testing.T) {
	c := Passthrough{}

	out, err := c.Serialize(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "map[a:1]", string(out))

	out, err = c.Serialize(nil)
	require.NoError(t, err)
	assert.Empty(t, out)

	assert.Equal(t, []byte("true"), Stringify(true))
	assert.Equal(t, []byte("42"), Stringify(42))
	assert.Equal(t, []byte("raw"), Stringify([]byte("raw")))
}

func TestIsScalar(t *testing.T) {
	assert.True(t, IsScalar("s"))
	assert.True(t, IsScalar([]byte("b")))
	assert.True(t, IsScalar(3.5))
	assert.True(t, IsScalar(false))
	assert.False(t, IsScalar(nil))
	assert.False(t, IsScalar(map[string]any{}))
	assert.False(t, IsScalar([]string{"a"}))
}

func TestFuncCodec(t *testing.T) {
	upper := Func{
		ParseFunc: func(body []byte) (any, error) {
			return len(body), nil
		},
	}

	parsed, err := upper.Parse([]byte("four"))
	require.NoError(t, err)
	assert.Equal(t, 4, parsed)

	out, err := upper.Serialize("as-is")
	require.NoError(t, err)
	assert.Equal(t, "as-is", string(out))
}
