package idgen

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/brettbedarf/vfstree"
)

var ErrUnknownGenerator = errors.New("unknown id generator")

// Factory creates a generator. prefix is only meaningful to generators that use one.
type Factory func(prefix string) vfstree.IDGenerator

// Registry ties generator names to factories
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under name. The first registration for a name wins.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return
	}
	r.factories[name] = f
}

// New creates a generator registered under name
func (r *Registry) New(name, prefix string) (vfstree.IDGenerator, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, name)
	}
	return f(prefix), nil
}

// Names returns the registered generator names sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

func init() {
	RegisterBuiltins(defaultRegistry)
}

// Register adds a factory to the default registry
func Register(name string, f Factory) {
	defaultRegistry.Register(name, f)
}

// New creates a generator from the default registry
func New(name, prefix string) (vfstree.IDGenerator, error) {
	return defaultRegistry.New(name, prefix)
}
