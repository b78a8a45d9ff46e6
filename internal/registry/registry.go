// Package registry implements a single generic discovery/resolution
// mechanism reused for both the node-type registry and the LLM provider
// registry: register a named factory once, resolve
// instances by name many times.
//
// Every plugin package that wants to participate registers a constructor
// closure in an init() function via a blank import, which eliminates the
// need for reflective package discovery at startup. Laziness is preserved
// at the level that matters: the registry stores cheap factory closures up
// front, and only constructs a node instance when a pipeline document
// actually asks for that type.
package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	pipelineerrors "github.com/flowforge/pipeline/pkg/errors"
)

// Factory constructs a new instance of type T, given the node's configured
// name and its free-form params tree.
type Factory[T any] func(name string, params map[string]any) (T, error)

// Registry maps a textual type name to a Factory, lazily constructing
// instances on demand. It is safe for concurrent use.
type Registry[T any] struct {
	mu        sync.RWMutex
	factories map[string]Factory[T]
}

// New returns an empty registry for type T.
func New[T any]() *Registry[T] {
	return &Registry[T]{factories: make(map[string]Factory[T])}
}

// Register records factory under typeName. Registering the same type name
// twice is an error.
func (r *Registry[T]) Register(typeName string, factory Factory[T]) error {
	if factory == nil {
		return fmt.Errorf("registry: nil factory for type %q", typeName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[typeName]; exists {
		return fmt.Errorf("registry: type %q already registered", typeName)
	}
	r.factories[typeName] = factory
	return nil
}

// New constructs an instance of typeName, named name, with the given
// params. It fails with UnknownNodeTypeError if typeName has no registered
// factory, and with InvalidNodeBindingError if the factory itself fails or
// produces a nil instance.
func (r *Registry[T]) New(typeName, name string, params map[string]any) (T, error) {
	var zero T

	r.mu.RLock()
	factory, ok := r.factories[typeName]
	r.mu.RUnlock()

	if !ok {
		return zero, pipelineerrors.NewUnknownNodeTypeError(typeName)
	}

	instance, err := factory(name, params)
	if err != nil {
		return zero, pipelineerrors.NewInvalidNodeBindingError(typeName, err)
	}
	if isNilValue(instance) {
		return zero, pipelineerrors.NewInvalidNodeBindingError(typeName, nil)
	}

	return instance, nil
}

// List returns the registered type names in sorted order.
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether typeName has a registered factory.
func (r *Registry[T]) Has(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[typeName]
	return ok
}

func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
