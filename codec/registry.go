package codec

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/GriffinCanCode/courier/media"
)

// Registry maps canonical MIME types to codecs.
//
// Reads load an immutable snapshot and never block. Writers serialize on a
// mutex and publish a fresh copy of the map.
type Registry struct {
	mu       sync.Mutex
	codecs   atomic.Pointer[map[string]Codec]
	fallback Codec

	installOnce  sync.Once
	extendedOnce sync.Once
}

// NewRegistry returns an empty registry whose fallback is Passthrough.
func NewRegistry() *Registry {
	r := &Registry{fallback: Passthrough{}}
	empty := make(map[string]Codec)
	r.codecs.Store(&empty)
	return r
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry with the built-in codecs installed.
func Default() *Registry {
	defaultRegistry.Install()
	return defaultRegistry
}

// Register maps mime to c, replacing any existing codec.
func (r *Registry) Register(mime string, c Codec) {
	if c == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.clone()
	next[mime] = c
	r.codecs.Store(&next)
}

// RegisterIfAbsent maps mime to c only when nothing is registered for it yet.
// It reports whether c was stored.
func (r *Registry) RegisterIfAbsent(mime string, c Codec) bool {
	if c == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := (*r.codecs.Load())[mime]; ok {
		return false
	}

	next := r.clone()
	next[mime] = c
	r.codecs.Store(&next)
	return true
}

// Get returns the codec for mime, or Passthrough when none is registered.
func (r *Registry) Get(mime string) Codec {
	if c, ok := r.Lookup(mime); ok {
		return c
	}
	return r.fallback
}

// Lookup returns the codec registered for mime without falling back.
func (r *Registry) Lookup(mime string) (Codec, bool) {
	if mime == "" {
		return nil, false
	}
	c, ok := (*r.codecs.Load())[mime]
	return c, ok
}

// Has reports whether a codec is registered for mime.
func (r *Registry) Has(mime string) bool {
	_, ok := r.Lookup(mime)
	return ok
}

// Types returns the registered MIME types in sorted order.
func (r *Registry) Types() []string {
	snapshot := *r.codecs.Load()
	types := make([]string, 0, len(snapshot))
	for mime := range snapshot {
		types = append(types, mime)
	}
	sort.Strings(types)
	return types
}

// Install registers the built-in codecs. It runs once per registry and never
// replaces codecs registered before it.
func (r *Registry) Install() {
	r.installOnce.Do(func() {
		r.RegisterIfAbsent(media.JSON, NewJSON(JSONOptions{}))
		r.RegisterIfAbsent(media.XML, NewXML(XMLOptions{}))
		r.RegisterIfAbsent(media.Form, Form{})
		r.RegisterIfAbsent(media.CSV, NewCSV())
	})
}

// InstallExtended registers the YAML, TOML, MessagePack and BSON codecs with
// the same guarantees as Install.
func (r *Registry) InstallExtended() {
	r.extendedOnce.Do(func() {
		r.RegisterIfAbsent(media.YAML, YAML{})
		r.RegisterIfAbsent(media.TOML, TOML{})
		r.RegisterIfAbsent(media.Msgpack, Msgpack{})
		r.RegisterIfAbsent("application/x-msgpack", Msgpack{})
		r.RegisterIfAbsent(media.BSON, BSON{})
	})
}

// clone copies the current snapshot. Callers must hold r.mu.
func (r *Registry) clone() map[string]Codec {
	current := *r.codecs.Load()
	next := make(map[string]Codec, len(current)+1)
	for k, v := range current {
		next[k] = v
	}
	return next
}
