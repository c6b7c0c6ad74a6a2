// Package tree defines the settings tree: a closed set of node kinds that the
// traversal, merge and post-processing passes operate on.
//
// Nodes are one of:
//   - Scalar: a leaf holding a string, int64, float64, bool, nil or any resolved object
//   - *OrderedMap: string keys kept in write order
//   - *List: ordered elements
//   - *Deferred: a host-owned placeholder whose value the merge may set
//
// OrderedMap and List implement Container, the capability set the traverser
// needs (has, get, set, move-to-end). Container operations report
// ErrTypeMismatch when a segment kind does not fit the container kind.
package tree
