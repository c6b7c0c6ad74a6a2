// Package traverse walks a settings tree along a path, optionally creating
// missing containers and calling a visitor at each step.
//
// Containers created for missing segments are chosen by the kind of the
// next segment: an index creates a list long enough to hold it, a key
// creates an ordered map. The final segment gets the explicit default when
// one is supplied with WithDefault.
package traverse

import (
	"fmt"

	"github.com/0xalexb/hjarta-settings/pathexpr"
	"github.com/0xalexb/hjarta-settings/tree"
)

// Step describes one segment of a walk.
type Step struct {
	// Container holds the segment.
	Container tree.Container
	// Segment is the segment being resolved.
	Segment pathexpr.Segment
	// Value is the current value of Segment in Container.
	Value tree.Node
	// Next is the following segment. It is only meaningful when Last is false.
	Next pathexpr.Segment
	// Last is true for the final segment of the path.
	Last bool
	// Path is the path walked so far, including Segment.
	Path pathexpr.Path
}

// Result tells the walk how to continue after a visit.
type Result struct {
	replace tree.Node
}

// Continue continues the walk with the step's value.
func Continue() Result {
	return Result{replace: nil}
}

// Replace continues the walk with n instead of the step's value. On the last
// step n becomes the value returned by the walk.
func Replace(n tree.Node) Result {
	return Result{replace: n}
}

// Visitor is called for visited steps of a walk.
type Visitor interface {
	Visit(step Step) (Result, error)
}

// VisitorFunc adapts a function to Visitor.
type VisitorFunc func(step Step) (Result, error)

// Visit implements Visitor.
func (f VisitorFunc) Visit(step Step) (Result, error) {
	return f(step)
}

type options struct {
	visitor       Visitor
	lastOnly      bool
	createMissing bool
	def           tree.Node
	hasDefault    bool
}

// Option configures a walk.
type Option func(*options)

// WithVisitor sets the visitor.
func WithVisitor(v Visitor) Option {
	return func(o *options) {
		o.visitor = v
	}
}

// LastOnly restricts visits to the final segment.
func LastOnly() Option {
	return func(o *options) {
		o.lastOnly = true
	}
}

// CreateMissing creates missing containers and slots along the path.
func CreateMissing() Option {
	return func(o *options) {
		o.createMissing = true
	}
}

// WithDefault sets the value created for a missing final segment.
// It only applies together with CreateMissing.
func WithDefault(n tree.Node) Option {
	return func(o *options) {
		o.def = n
		o.hasDefault = true
	}
}

// Traverse parses expr and walks root along it. See Walk.
func Traverse(root tree.Node, expr string, opts ...Option) (tree.Node, error) {
	path, err := pathexpr.Parse(expr)
	if err != nil {
		return nil, err
	}

	return Walk(root, path, opts...)
}

// Walk walks root along path and returns the value at the final segment.
func Walk(root tree.Node, path pathexpr.Path, opts ...Option) (tree.Node, error) {
	var o options

	for _, apply := range opts {
		apply(&o)
	}

	current := root

	for i, seg := range path {
		last := i == len(path)-1

		var next pathexpr.Segment
		if !last {
			next = path[i+1]
		}

		container, ok := tree.AsContainer(current)
		if !ok {
			return nil, fmt.Errorf("at %q: %w: %s is not a container", path[:i+1].String(), tree.ErrTypeMismatch, kindOf(current))
		}

		var (
			value tree.Node
			err   error
		)

		if o.createMissing {
			def, hasDef := o.def, o.hasDefault && last
			value, err = getOrCreate(container, seg, next, last, def, hasDef)
		} else {
			value, err = container.GetSegment(seg)
		}

		if err != nil {
			return nil, fmt.Errorf("at %q: %w", path[:i+1].String(), err)
		}

		if o.visitor != nil && (!o.lastOnly || last) {
			res, err := o.visitor.Visit(Step{
				Container: container,
				Segment:   seg,
				Value:     value,
				Next:      next,
				Last:      last,
				Path:      path[:i+1],
			})
			if err != nil {
				return nil, err
			}

			if res.replace != nil {
				value = res.replace
			}
		}

		current = value
	}

	return current, nil
}

// getOrCreate returns container[seg], creating it when missing. Without an
// explicit default the created value depends on the next segment.
func getOrCreate(
	container tree.Container,
	seg, next pathexpr.Segment,
	last bool,
	def tree.Node,
	hasDef bool,
) (tree.Node, error) {
	if !hasDef {
		def = defaultFor(next, last)
	}

	switch c := container.(type) {
	case *tree.List:
		if !seg.IsIndex() {
			return c.GetSegment(seg)
		}

		c.Grow(seg.Index() + 1)

		if tree.IsPlaceholder(c.At(seg.Index())) {
			err := c.SetSegment(seg, def)
			if err != nil {
				return nil, err
			}
		}
	default:
		has, err := container.HasSegment(seg)
		if err != nil {
			return nil, err
		}

		if !has {
			err := container.SetSegment(seg, def)
			if err != nil {
				return nil, err
			}
		}
	}

	return container.GetSegment(seg)
}

func defaultFor(next pathexpr.Segment, last bool) tree.Node {
	if !last && next.IsIndex() {
		list := tree.NewList()
		list.Grow(next.Index() + 1)

		return list
	}

	return tree.NewOrderedMap()
}

func kindOf(n tree.Node) string {
	if n == nil {
		return "nil"
	}

	return n.Kind().String()
}
