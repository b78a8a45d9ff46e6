// Package node defines the contract every pipeline node plugin implements.
//
// A node is a unit of processing identified by name. The engine drives it
// through Run (and, for nodes that opt in, Finalize); everything else about
// a node's participation in the graph — its required input keys, whether it
// defers output to finalize, and its declared edge types — is expressed as
// small optional interfaces the engine and loader detect with a type
// assertion, the same pattern used elsewhere in this codebase for
// optional plugin behavior.
package node

import "context"

// Node is the minimal contract every pipeline node must satisfy.
type Node interface {
	// Name returns the node's unique identifier within its pipeline.
	Name() string

	// Run executes the node's processing step. For a node with required
	// inputs, input holds exactly those keys. For a node without, input is
	// nil when the delivery carried no key (the keyless entry trigger or a
	// bare value from its producer), and otherwise holds just the one
	// delivered key/value pair.
	Run(ctx context.Context, input map[string]any) (Result, error)
}

// Finalizer is implemented by nodes that defer some or all of their output
// to a post-traversal finalize phase.
type Finalizer interface {
	Finalize(ctx context.Context) (Result, error)
}

// RequiredInputKeys is implemented by nodes that must receive a specific
// set of keyed inputs before they may run.
type RequiredInputKeys interface {
	RequiredInputs() []string
}

// DeferredOutput is implemented by nodes whose nil Run result does not
// terminate the branch because a later Finalize call is expected to emit.
type DeferredOutput interface {
	DeferOutput() bool
}

// TypedInput is implemented by nodes that declare a semantic input type for
// edge validation.
type TypedInput interface {
	InputType() string
}

// TypedOutput is implemented by nodes that declare a semantic output type
// for edge validation.
type TypedOutput interface {
	OutputType() string
}

// RequiredInputs returns n's declared required input keys, or nil when n
// does not implement RequiredInputKeys.
func RequiredInputs(n Node) []string {
	if r, ok := n.(RequiredInputKeys); ok {
		return r.RequiredInputs()
	}
	return nil
}

// DefersOutput reports whether n defers output to Finalize.
func DefersOutput(n Node) bool {
	if d, ok := n.(DeferredOutput); ok {
		return d.DeferOutput()
	}
	return false
}

// DeclaredInputType returns n's declared input type tag, or "" when absent.
func DeclaredInputType(n Node) string {
	if t, ok := n.(TypedInput); ok {
		return t.InputType()
	}
	return ""
}

// DeclaredOutputType returns n's declared output type tag, or "" when
// absent.
func DeclaredOutputType(n Node) string {
	if t, ok := n.(TypedOutput); ok {
		return t.OutputType()
	}
	return ""
}
