// Package provider defines the contract for LLM provider plugins and
// their registry. Providers resolve through the same registration
// mechanism as node types but live in their own registry, so a provider
// name and a node type name can never collide.
//
// No concrete provider ships with this module; implementations register
// themselves from init() exactly as the bundled node plugins do.
package provider

import (
	"context"

	"github.com/flowforge/pipeline/internal/registry"
)

// Provider is the minimal contract an LLM provider plugin satisfies.
type Provider interface {
	// Name returns the provider instance's configured name.
	Name() string

	// Complete sends prompt to the backing model and returns its
	// completion.
	Complete(ctx context.Context, prompt string) (string, error)
}

var defaultRegistry = registry.New[Provider]()

// Register records factory under typeName in the default provider
// registry. Meant to be called from a provider package's init(); a
// conflict there is a programming error, so it panics.
func Register(typeName string, factory registry.Factory[Provider]) {
	if err := defaultRegistry.Register(typeName, factory); err != nil {
		panic(err)
	}
}

// Default returns the registry provider plugins register into.
func Default() *registry.Registry[Provider] {
	return defaultRegistry
}
