package tree

import "sync"

// Deferred is a placeholder installed in base settings by the host. It
// carries a default and receives the override value when a settings file
// assigns the slot it occupies.
//
// A Deferred is safe for concurrent use, so a watcher may resolve it while
// the host reads it.
type Deferred struct {
	mu    sync.RWMutex
	def   Node
	value Node
	set   bool
}

// NewDeferred returns a placeholder with the given default.
func NewDeferred(def Node) *Deferred {
	return &Deferred{def: def}
}

// Kind implements Node.
func (*Deferred) Kind() Kind {
	return KindDeferred
}

// Default returns the default value.
func (d *Deferred) Default() Node {
	return d.def
}

// Value returns the override value when one was set, the default otherwise.
func (d *Deferred) Value() Node {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.set {
		return d.value
	}

	return d.def
}

// IsSet reports whether an override value was assigned.
func (d *Deferred) IsSet() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.set
}

// Resolve assigns the override value.
func (d *Deferred) Resolve(value Node) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.value = value
	d.set = true
}
