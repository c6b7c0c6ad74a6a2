package yaml

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/0xalexb/hjarta-settings/tree"

	"github.com/goccy/go-yaml"
)

// ErrUnsupportedFormat is returned by Encode for an unknown output format.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ErrUnsupportedValue is returned when a decoded value has no tree representation.
var ErrUnsupportedValue = errors.New("unsupported value")

// Format selects the Encode output.
type Format string

// Output formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Codec implements config.ValueDecoder and config.Binder on top of goccy/go-yaml.
type Codec struct{}

// NewCodec creates a new codec instance.
func NewCodec() *Codec {
	return &Codec{}
}

// Decode parses a raw setting value into a tree node.
func (c *Codec) Decode(raw string) (tree.Node, error) {
	if strings.TrimSpace(raw) == "" {
		return tree.Null(), nil
	}

	var value any

	err := yaml.UnmarshalWithOptions([]byte(raw), &value, yaml.UseOrderedMap())
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return FromValue(value)
}

// Encode renders n in the requested format, keeping map order.
func (c *Codec) Encode(n tree.Node, format Format) ([]byte, error) {
	value := ToValue(n)

	switch format {
	case FormatYAML, "":
		data, err := yaml.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("marshal error: %w", err)
		}

		return data, nil
	case FormatJSON:
		data, err := yaml.MarshalWithOptions(value, yaml.JSON())
		if err != nil {
			return nil, fmt.Errorf("marshal error: %w", err)
		}

		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Bind unmarshals n into target using `yaml` struct tags.
func (c *Codec) Bind(n tree.Node, target any) error {
	data, err := yaml.Marshal(ToValue(n))
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	err = yaml.Unmarshal(data, target)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	return nil
}

// FromValue converts a decoded YAML value into a tree node.
func FromValue(value any) (tree.Node, error) {
	switch v := value.(type) {
	case nil:
		return tree.Null(), nil
	case string:
		return tree.String(v), nil
	case bool:
		return tree.Bool(v), nil
	case int:
		return tree.Int(int64(v)), nil
	case int64:
		return tree.Int(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return tree.Float(float64(v)), nil
		}

		return tree.Int(int64(v)), nil
	case float64:
		return tree.Float(v), nil
	case yaml.MapSlice:
		out := tree.NewOrderedMap()

		for _, item := range v {
			child, err := FromValue(item.Value)
			if err != nil {
				return nil, err
			}

			out.Set(keyString(item.Key), child)
		}

		return out, nil
	case map[string]any:
		// only reached for values built outside Decode
		out := tree.NewOrderedMap()

		for key, item := range v {
			child, err := FromValue(item)
			if err != nil {
				return nil, err
			}

			out.Set(key, child)
		}

		return out, nil
	case []any:
		out := tree.NewList()

		for _, item := range v {
			child, err := FromValue(item)
			if err != nil {
				return nil, err
			}

			out.Append(child)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
	}
}

// ToValue converts a tree node into values goccy/go-yaml encodes in order.
func ToValue(n tree.Node) any {
	switch v := n.(type) {
	case *tree.OrderedMap:
		out := make(yaml.MapSlice, 0, v.Len())

		v.Each(func(key string, child tree.Node) bool {
			out = append(out, yaml.MapItem{Key: key, Value: ToValue(child)})

			return true
		})

		return out
	case *tree.List:
		out := make([]any, 0, v.Len())
		for _, child := range v.Items() {
			out = append(out, ToValue(child))
		}

		return out
	case *tree.Deferred:
		return ToValue(v.Value())
	case tree.Scalar:
		return v.Value
	default:
		return nil
	}
}

func keyString(key any) string {
	if s, ok := key.(string); ok {
		return s
	}

	node, err := FromValue(key)
	if err != nil {
		return fmt.Sprint(key)
	}

	if scalar, ok := node.(tree.Scalar); ok {
		return scalar.Text()
	}

	return fmt.Sprint(key)
}
