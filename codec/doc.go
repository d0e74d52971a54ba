// Package codec provides content-type aware parsing and serialization.
//
// A Codec turns a response body into structured data and a request payload
// into a body. Codecs are looked up by canonical MIME type in a Registry.
// Lookups never fail: an unregistered type resolves to Passthrough, which
// hands the raw text back unchanged.
//
// Built-in codecs (installed by Registry.Install):
//   - application/json: JSON (bytedance/sonic)
//   - application/xml: XML (generic XMLNode tree)
//   - application/x-www-form-urlencoded: Form
//   - text/csv: CSV (Table of header plus rows)
//
// Extended codecs (installed by Registry.InstallExtended):
//   - application/x-yaml: YAML (goccy/go-yaml)
//   - application/toml: TOML (pelletier/go-toml/v2)
//   - application/msgpack: Msgpack (vmihailenco/msgpack/v5)
//   - application/bson: BSON (mongo-driver bson)
//
// HTML and Protobuf need per-use configuration and are registered
// explicitly or attached to a single request.
//
// Example Usage:
//
//	reg := codec.Default()
//	data, err := reg.Get("application/json").Parse([]byte(`{"a":1}`))
package codec
