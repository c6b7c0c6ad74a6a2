// Package interpolate substitutes {NAME} references in settings strings.
//
// NAME is a settings path expression looked up in a context tree, so
// "{PACKAGE}", "{DATABASES.default.HOST}" and "{ALLOWED_HOSTS.0}" all work.
// Doubled braces produce literal braces. Substitution is a single pass: the
// substituted text is not scanned again.
package interpolate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/0xalexb/hjarta-settings/config/parser/yaml"
	"github.com/0xalexb/hjarta-settings/traverse"
	"github.com/0xalexb/hjarta-settings/tree"
)

// ErrUnresolvedInterpolation is returned when a template references a name missing from the context.
var ErrUnresolvedInterpolation = errors.New("unresolved interpolation")

// ErrMalformedTemplate is returned for unbalanced or empty braces.
var ErrMalformedTemplate = errors.New("malformed template")

// Tree interpolates every key and value of root in place.
//
// Lookups go to a snapshot of root rather than root itself. Top-level
// entries are processed in order and each result is published to the
// snapshot once it is complete, so an entry sees the interpolated values of
// entries before it and the raw values of entries after it.
//
// A key that interpolates to the name of another entry replaces that entry.
// The replacing value is not interpolated again.
func Tree(root *tree.OrderedMap) error {
	snapshot, _ := tree.Clone(root).(*tree.OrderedMap)
	renamed := make(map[string]bool)

	for _, key := range root.Keys() {
		child, ok := root.Get(key)
		if !ok || renamed[key] {
			continue
		}

		newKey, err := String(key, snapshot)
		if err != nil {
			return err
		}

		newValue, err := Value(child, snapshot)
		if err != nil {
			return fmt.Errorf("interpolating %q: %w", key, err)
		}

		root.Rename(key, newKey, newValue)
		snapshot.Rename(key, newKey, tree.Clone(newValue))

		if newKey != key {
			renamed[newKey] = true
		}
	}

	return nil
}

// Value interpolates n against ctx. Maps and lists are updated in place and
// returned; strings yield a new scalar; other nodes are returned unchanged.
func Value(n tree.Node, ctx tree.Node) (tree.Node, error) {
	switch v := n.(type) {
	case tree.Scalar:
		s, ok := v.Value.(string)
		if !ok {
			return v, nil
		}

		out, err := String(s, ctx)
		if err != nil {
			return nil, err
		}

		return tree.String(out), nil
	case *tree.OrderedMap:
		renamed := make(map[string]bool)

		for _, key := range v.Keys() {
			child, ok := v.Get(key)
			if !ok || renamed[key] {
				continue
			}

			newKey, err := String(key, ctx)
			if err != nil {
				return nil, err
			}

			newChild, err := Value(child, ctx)
			if err != nil {
				return nil, err
			}

			v.Rename(key, newKey, newChild)

			if newKey != key {
				renamed[newKey] = true
			}
		}

		return v, nil
	case *tree.List:
		for i, item := range v.Items() {
			newItem, err := Value(item, ctx)
			if err != nil {
				return nil, err
			}

			v.Set(i, newItem)
		}

		return v, nil
	default:
		return n, nil
	}
}

// String formats template against ctx.
func String(template string, ctx tree.Node) (string, error) {
	if !strings.ContainsAny(template, "{}") {
		return template, nil
	}

	var out strings.Builder

	for i := 0; i < len(template); i++ {
		c := template[i]

		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				out.WriteByte('{')
				i++

				continue
			}

			end := strings.IndexAny(template[i+1:], "{}")
			if end < 0 || template[i+1+end] != '}' {
				return "", fmt.Errorf("%w: unmatched %q in %q", ErrMalformedTemplate, "{", template)
			}

			name := template[i+1 : i+1+end]
			if name == "" {
				return "", fmt.Errorf("%w: empty field in %q", ErrMalformedTemplate, template)
			}

			text, err := lookup(name, ctx)
			if err != nil {
				return "", fmt.Errorf("%w: {%s} in %q: %w", ErrUnresolvedInterpolation, name, template, err)
			}

			out.WriteString(text)

			i += end + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				out.WriteByte('}')
				i++

				continue
			}

			return "", fmt.Errorf("%w: single %q in %q", ErrMalformedTemplate, "}", template)
		default:
			out.WriteByte(c)
		}
	}

	return out.String(), nil
}

func lookup(name string, ctx tree.Node) (string, error) {
	value, err := traverse.Traverse(ctx, name)
	if err != nil {
		return "", err
	}

	return format(value)
}

func format(n tree.Node) (string, error) {
	switch v := n.(type) {
	case tree.Scalar:
		return v.Text(), nil
	case *tree.Deferred:
		return format(v.Value())
	default:
		data, err := yaml.NewCodec().Encode(n, yaml.FormatJSON)
		if err != nil {
			return "", err
		}

		return strings.TrimSpace(string(data)), nil
	}
}
