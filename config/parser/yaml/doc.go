// Package yaml provides the value codec for settings files.
//
// This package uses github.com/goccy/go-yaml to decode the raw value of a
// settings entry into a tree node. YAML is a superset of JSON, so both JSON
// literals and YAML flow shorthand are accepted:
//
//	"local value"          -> string
//	1                      -> int64
//	["a", "b"]             -> list
//	{"x": 1, "y": [1, 2]}  -> ordered map (key order is preserved)
//	(empty)                -> null
//
// Mappings are decoded with yaml.UseOrderedMap so the order written in the
// file survives into the settings tree.
//
// The same codec encodes a tree back to YAML or JSON and binds a subtree to a
// Go struct using `yaml` tags:
//
//	codec := yaml.NewCodec()
//	node, err := codec.Decode(`{"host": "localhost", "port": 8080}`)
//	err = codec.Bind(node, &cfg)
package yaml
