package tree

import (
	"fmt"
	"slices"

	"github.com/0xalexb/hjarta-settings/pathexpr"
)

// List is an ordered sequence of nodes.
type List struct {
	items []Node
}

// NewList returns a list holding items.
func NewList(items ...Node) *List {
	return &List{items: slices.Clone(items)}
}

// Kind implements Node.
func (*List) Kind() Kind {
	return KindList
}

// Len returns the number of elements.
func (l *List) Len() int {
	return len(l.items)
}

// Items returns a copy of the elements.
func (l *List) Items() []Node {
	return slices.Clone(l.items)
}

// At returns the element at i. It panics if i is out of range.
func (l *List) At(i int) Node {
	return l.items[i]
}

// Set replaces the element at i. It panics if i is out of range.
func (l *List) Set(i int, n Node) {
	l.items[i] = n
}

// Append adds items to the end of the list.
func (l *List) Append(items ...Node) {
	l.items = append(l.items, items...)
}

// Grow pads the list with unassigned slots until it holds at least n elements.
// It never shrinks the list.
func (l *List) Grow(n int) {
	for len(l.items) < n {
		l.items = append(l.items, placeholder{})
	}
}

// Concat returns a new list with the elements of l followed by those of other.
func (l *List) Concat(other *List) *List {
	items := make([]Node, 0, len(l.items)+len(other.items))
	items = append(items, l.items...)
	items = append(items, other.items...)

	return &List{items: items}
}

// HasSegment implements Container.
func (l *List) HasSegment(seg pathexpr.Segment) (bool, error) {
	if !seg.IsIndex() {
		return false, fmt.Errorf("%w: key %q on list", ErrTypeMismatch, seg.Key())
	}

	return seg.Index() < len(l.items), nil
}

// GetSegment implements Container.
func (l *List) GetSegment(seg pathexpr.Segment) (Node, error) {
	if !seg.IsIndex() {
		return nil, fmt.Errorf("%w: key %q on list", ErrTypeMismatch, seg.Key())
	}

	if seg.Index() >= len(l.items) {
		return nil, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, seg.Index(), len(l.items))
	}

	return l.items[seg.Index()], nil
}

// SetSegment implements Container. The index must already exist; see Grow.
func (l *List) SetSegment(seg pathexpr.Segment, value Node) error {
	if !seg.IsIndex() {
		return fmt.Errorf("%w: key %q on list", ErrTypeMismatch, seg.Key())
	}

	if seg.Index() >= len(l.items) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, seg.Index(), len(l.items))
	}

	l.items[seg.Index()] = value

	return nil
}

// MoveSegmentToEnd implements Container. List order is positional, so it does nothing.
func (*List) MoveSegmentToEnd(pathexpr.Segment) {}
