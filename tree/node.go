package tree

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/0xalexb/hjarta-settings/pathexpr"
)

// ErrKeyNotFound is returned when a mapping has no entry for a key segment.
var ErrKeyNotFound = errors.New("key not found")

// ErrIndexOutOfRange is returned when a list index segment is past the end of the list.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrTypeMismatch is returned when a segment kind does not match the node it is applied to.
var ErrTypeMismatch = errors.New("type mismatch")

// Kind identifies the variant of a Node.
type Kind uint8

// Node kinds.
const (
	KindScalar Kind = iota
	KindMap
	KindList
	KindDeferred
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	case KindDeferred:
		return "deferred"
	default:
		return "unknown"
	}
}

// Node is a value in the settings tree.
type Node interface {
	Kind() Kind
}

// Container is a node that holds child nodes addressable by segment.
type Container interface {
	Node
	Len() int
	// HasSegment reports whether seg addresses an existing child.
	HasSegment(seg pathexpr.Segment) (bool, error)
	// GetSegment returns the child addressed by seg.
	GetSegment(seg pathexpr.Segment) (Node, error)
	// SetSegment replaces the child addressed by seg, creating map entries as needed.
	SetSegment(seg pathexpr.Segment, value Node) error
	// MoveSegmentToEnd moves an existing child to the end of the iteration order.
	// Lists keep their order.
	MoveSegmentToEnd(seg pathexpr.Segment)
}

// AsContainer returns n as a Container if it is one.
func AsContainer(n Node) (Container, bool) {
	switch c := n.(type) {
	case *OrderedMap:
		return c, c != nil
	case *List:
		return c, c != nil
	default:
		return nil, false
	}
}

// Scalar is a leaf value.
type Scalar struct {
	Value any
}

// Kind implements Node.
func (Scalar) Kind() Kind {
	return KindScalar
}

// String returns a string scalar.
func String(s string) Scalar {
	return Scalar{Value: s}
}

// Int returns an integer scalar.
func Int(i int64) Scalar {
	return Scalar{Value: i}
}

// Float returns a floating point scalar.
func Float(f float64) Scalar {
	return Scalar{Value: f}
}

// Bool returns a boolean scalar.
func Bool(b bool) Scalar {
	return Scalar{Value: b}
}

// Null returns the null scalar.
func Null() Scalar {
	return Scalar{Value: nil}
}

// IsNull reports whether the scalar holds nil.
func (s Scalar) IsNull() bool {
	return s.Value == nil
}

// Text returns the natural text form of the scalar value. Whole floats keep
// a decimal point so they read back as floats.
func (s Scalar) Text() string {
	switch v := s.Value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		text := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(text, ".eIN") {
			text += ".0"
		}

		return text
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// StringValue returns the string held by n when n is a string scalar.
func StringValue(n Node) (string, bool) {
	s, ok := n.(Scalar)
	if !ok {
		return "", false
	}

	str, ok := s.Value.(string)

	return str, ok
}

// placeholder marks list slots created by Grow that have not been assigned yet.
type placeholder struct{}

func (placeholder) Kind() Kind {
	return KindScalar
}

// IsPlaceholder reports whether n is an unassigned list slot.
func IsPlaceholder(n Node) bool {
	_, ok := n.(placeholder)

	return ok
}

// ClearPlaceholders replaces every unassigned list slot under n with Null.
func ClearPlaceholders(n Node) {
	switch c := n.(type) {
	case *OrderedMap:
		for _, key := range c.keys {
			ClearPlaceholders(c.values[key])
		}
	case *List:
		for i, item := range c.items {
			if IsPlaceholder(item) {
				c.items[i] = Null()

				continue
			}

			ClearPlaceholders(item)
		}
	}
}

// Clone returns a deep copy of n. Deferred nodes are shared, not copied:
// they belong to the host.
func Clone(n Node) Node {
	switch c := n.(type) {
	case *OrderedMap:
		out := NewOrderedMap()
		for _, key := range c.keys {
			out.Set(key, Clone(c.values[key]))
		}

		return out
	case *List:
		out := &List{items: make([]Node, len(c.items))}
		for i, item := range c.items {
			out.items[i] = Clone(item)
		}

		return out
	default:
		return n
	}
}
