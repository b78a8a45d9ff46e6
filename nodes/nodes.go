// Package nodes holds the default node-type registry and the bundled node
// plugins that register into it. Each plugin lives in its own subpackage
// and self-registers from init(); binaries pull in the whole set with a
// single blank import of nodes/all.
package nodes

import (
	"github.com/flowforge/pipeline/internal/node"
	"github.com/flowforge/pipeline/internal/registry"
)

var defaultRegistry = registry.New[node.Node]()

// Register records factory under typeName in the default registry. It is
// meant to be called from a plugin package's init(); a registration
// conflict there is a programming error, so it panics rather than
// returning an error nothing could handle.
func Register(typeName string, factory registry.Factory[node.Node]) {
	if err := defaultRegistry.Register(typeName, factory); err != nil {
		panic(err)
	}
}

// Default returns the registry the bundled plugins register into.
func Default() *registry.Registry[node.Node] {
	return defaultRegistry
}
