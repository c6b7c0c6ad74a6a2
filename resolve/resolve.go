// Package resolve provides implementations of the name resolver used for
// IMPORT_FROM_STRING settings: a string setting naming an object is replaced
// by the object the resolver returns for that name.
package resolve

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

// ErrNotFound is returned when a name has no registered value.
var ErrNotFound = errors.New("name not found")

// ErrEmptyName is returned when registering an empty name.
var ErrEmptyName = errors.New("name must not be empty")

// Resolver maps a dotted reference to a value. Implementations must be
// deterministic and return a distinguishable error for unknown names.
type Resolver interface {
	Resolve(name string) (any, error)
}

// Func adapts a function to Resolver.
type Func func(name string) (any, error)

// Resolve implements Resolver.
func (f Func) Resolve(name string) (any, error) {
	return f(name)
}

// Registry resolves names registered ahead of time.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{values: make(map[string]any)}
}

// Register associates name with value, replacing any previous value.
func (r *Registry) Register(name string, value any) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[name] = value

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, value any) *Registry {
	err := r.Register(name, value)
	if err != nil {
		panic(err)
	}

	return r
}

// Resolve implements Resolver.
func (r *Registry) Resolve(name string) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	return value, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.values))
	for name := range r.values {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// FromDotenv reads dotenv files from fsys and registers every variable as
// prefix+NAME. Later files win over earlier ones.
func FromDotenv(fsys afero.Fs, prefix string, filenames ...string) (*Registry, error) {
	registry := NewRegistry()

	for _, filename := range filenames {
		values, err := readDotenv(fsys, filename)
		if err != nil {
			return nil, fmt.Errorf("reading dotenv %q: %w", filename, err)
		}

		for key, value := range values {
			err := registry.Register(prefix+key, value)
			if err != nil {
				return nil, err
			}
		}
	}

	return registry, nil
}

func readDotenv(fsys afero.Fs, filename string) (map[string]string, error) {
	f, err := fsys.Open(filename)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = f.Close()
	}()

	return godotenv.Parse(f)
}
