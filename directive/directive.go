package directive

import (
	"fmt"

	"github.com/0xalexb/hjarta-settings/resolve"
	"github.com/0xalexb/hjarta-settings/traverse"
	"github.com/0xalexb/hjarta-settings/tree"
)

// Reserved top-level setting names.
const (
	ImportFromStringKey = "IMPORT_FROM_STRING"
	ExtraKey            = "EXTRA"
)

// ImportFromString replaces the string value of every setting listed under
// IMPORT_FROM_STRING with the object resolver returns for it. Non-string
// values are left alone, so the pass can run twice over the same tree.
// Resolver errors are returned as is.
func ImportFromString(settings *tree.OrderedMap, resolver resolve.Resolver) error {
	names, err := directiveList(settings, ImportFromStringKey)
	if err != nil || names == nil {
		return err
	}

	visit := traverse.VisitorFunc(func(step traverse.Step) (traverse.Result, error) {
		ref, ok := tree.StringValue(step.Value)
		if !ok {
			return traverse.Continue(), nil
		}

		obj, err := resolver.Resolve(ref)
		if err != nil {
			return traverse.Result{}, err
		}

		resolved := tree.Scalar{Value: obj}

		err = step.Container.SetSegment(step.Segment, resolved)
		if err != nil {
			return traverse.Result{}, fmt.Errorf("%s: %w", ImportFromStringKey, err)
		}

		return traverse.Replace(resolved), nil
	})

	for _, item := range names.Items() {
		name, ok := tree.StringValue(item)
		if !ok {
			return fmt.Errorf("%s: %w: entry is %s, not a string", ImportFromStringKey, tree.ErrTypeMismatch, item.Kind())
		}

		_, err := traverse.Traverse(settings, name, traverse.WithVisitor(visit), traverse.LastOnly())
		if err != nil {
			return err
		}
	}

	return nil
}

// AppendExtras replaces every list named under EXTRA with a new list holding
// its elements followed by the extra ones. Every named setting must exist and
// be a list; a null extra leaves it unchanged.
func AppendExtras(settings *tree.OrderedMap) error {
	value, ok := settings.Get(ExtraKey)
	if !ok || isEmpty(value) {
		return nil
	}

	extras, ok := value.(*tree.OrderedMap)
	if !ok {
		return fmt.Errorf("%s: %w: %s is not a map", ExtraKey, tree.ErrTypeMismatch, value.Kind())
	}

	for _, name := range extras.Keys() {
		extra, _ := extras.Get(name)

		visit := traverse.VisitorFunc(func(step traverse.Step) (traverse.Result, error) {
			current, ok := step.Value.(*tree.List)
			if !ok {
				return traverse.Result{}, fmt.Errorf("%w: only list settings can be extended, got %s", tree.ErrTypeMismatch, step.Value.Kind())
			}

			if isNull(extra) {
				return traverse.Replace(current), nil
			}

			extraList, ok := extra.(*tree.List)
			if !ok {
				return traverse.Result{}, fmt.Errorf("%w: extra value is %s, not a list", tree.ErrTypeMismatch, extra.Kind())
			}

			if extraList.Len() == 0 {
				return traverse.Replace(current), nil
			}

			extended := current.Concat(extraList)

			err := step.Container.SetSegment(step.Segment, extended)
			if err != nil {
				return traverse.Result{}, err
			}

			return traverse.Replace(extended), nil
		})

		_, err := traverse.Traverse(settings, name, traverse.WithVisitor(visit), traverse.LastOnly())
		if err != nil {
			return fmt.Errorf("%s %q: %w", ExtraKey, name, err)
		}
	}

	return nil
}

// directiveList returns the list stored under key, or nil when the key is
// absent, null or empty.
func directiveList(settings *tree.OrderedMap, key string) (*tree.List, error) {
	value, ok := settings.Get(key)
	if !ok || isEmpty(value) {
		return nil, nil //nolint:nilnil
	}

	list, ok := value.(*tree.List)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %s is not a list", key, tree.ErrTypeMismatch, value.Kind())
	}

	return list, nil
}

func isNull(n tree.Node) bool {
	s, ok := n.(tree.Scalar)

	return n == nil || ok && s.IsNull()
}

func isEmpty(n tree.Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case tree.Scalar:
		if v.IsNull() {
			return true
		}

		s, ok := v.Value.(string)

		return ok && s == ""
	case tree.Container:
		return v.Len() == 0
	default:
		return false
	}
}
