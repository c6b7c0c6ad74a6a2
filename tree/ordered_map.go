package tree

import (
	"fmt"
	"slices"

	"github.com/0xalexb/hjarta-settings/pathexpr"
)

// OrderedMap maps string keys to nodes and iterates in write order.
// Overwriting an existing key keeps its position; use MoveToEnd or
// Delete followed by Set to move it.
type OrderedMap struct {
	keys   []string
	values map[string]Node
}

// NewOrderedMap returns an empty map.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{keys: nil, values: make(map[string]Node)}
}

// Kind implements Node.
func (*OrderedMap) Kind() Kind {
	return KindMap
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int {
	return len(m.keys)
}

// Keys returns the keys in iteration order.
func (m *OrderedMap) Keys() []string {
	return slices.Clone(m.keys)
}

// Get returns the node stored under key.
func (m *OrderedMap) Get(key string) (Node, bool) {
	n, ok := m.values[key]

	return n, ok
}

// Has reports whether key is present.
func (m *OrderedMap) Has(key string) bool {
	_, ok := m.values[key]

	return ok
}

// Set stores n under key, appending the key if it is new.
func (m *OrderedMap) Set(key string, n Node) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.values[key] = n
}

// Delete removes key and reports whether it was present.
func (m *OrderedMap) Delete(key string) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}

	delete(m.values, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })

	return true
}

// MoveToEnd moves an existing key to the end of the iteration order.
func (m *OrderedMap) MoveToEnd(key string) {
	idx := slices.Index(m.keys, key)
	if idx < 0 || idx == len(m.keys)-1 {
		return
	}

	m.keys = append(slices.Delete(m.keys, idx, idx+1), key)
}

// Rename replaces oldKey with newKey at the same position and stores n there.
// An existing entry under newKey is dropped.
func (m *OrderedMap) Rename(oldKey, newKey string, n Node) {
	if oldKey == newKey {
		m.Set(oldKey, n)

		return
	}

	idx := slices.Index(m.keys, oldKey)
	if idx < 0 {
		m.Set(newKey, n)

		return
	}

	m.Delete(newKey)

	idx = slices.Index(m.keys, oldKey)
	m.keys[idx] = newKey

	delete(m.values, oldKey)
	m.values[newKey] = n
}

// Each calls fn for every entry in order until fn returns false.
func (m *OrderedMap) Each(fn func(key string, n Node) bool) {
	for _, key := range slices.Clone(m.keys) {
		n, ok := m.values[key]
		if !ok {
			continue
		}

		if !fn(key, n) {
			return
		}
	}
}

// HasSegment implements Container.
func (m *OrderedMap) HasSegment(seg pathexpr.Segment) (bool, error) {
	if seg.IsIndex() {
		return false, fmt.Errorf("%w: index %d on map", ErrTypeMismatch, seg.Index())
	}

	return m.Has(seg.Key()), nil
}

// GetSegment implements Container.
func (m *OrderedMap) GetSegment(seg pathexpr.Segment) (Node, error) {
	if seg.IsIndex() {
		return nil, fmt.Errorf("%w: index %d on map", ErrTypeMismatch, seg.Index())
	}

	n, ok := m.values[seg.Key()]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, seg.Key())
	}

	return n, nil
}

// SetSegment implements Container.
func (m *OrderedMap) SetSegment(seg pathexpr.Segment, value Node) error {
	if seg.IsIndex() {
		return fmt.Errorf("%w: index %d on map", ErrTypeMismatch, seg.Index())
	}

	m.Set(seg.Key(), value)

	return nil
}

// MoveSegmentToEnd implements Container.
func (m *OrderedMap) MoveSegmentToEnd(seg pathexpr.Segment) {
	if seg.IsIndex() {
		return
	}

	m.MoveToEnd(seg.Key())
}
