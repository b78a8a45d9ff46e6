// Package errors defines the typed error taxonomy raised by the loader and
// execution engine. Each type exposes enough structured context (phase,
// identifier) to produce the one-line diagnostics the engine's callers are
// expected to print; the two that arise from another failure
// (InvalidNodeBindingError, NodeExecutionError) also wrap that cause.
package errors

import (
	"fmt"
	"strings"
)

// UnresolvedVariableError is raised when a "${NAME}" placeholder in the
// pipeline document has no corresponding environment variable.
type UnresolvedVariableError struct {
	Name string
}

func NewUnresolvedVariableError(name string) error {
	return &UnresolvedVariableError{Name: name}
}

func (e *UnresolvedVariableError) Error() string {
	return fmt.Sprintf("unresolved variable: ${%s} has no environment value", e.Name)
}

// SchemaError aggregates every structural violation found while validating
// the expanded pipeline document against the required shape.
type SchemaError struct {
	Violations []string
}

func NewSchemaError(violations []string) error {
	return &SchemaError{Violations: append([]string(nil), violations...)}
}

func (e *SchemaError) Error() string {
	if len(e.Violations) == 0 {
		return "schema error: invalid pipeline document"
	}
	return fmt.Sprintf("schema error: %s", strings.Join(e.Violations, "; "))
}

// UnknownNodeTypeError is raised by the registry when a node's declared
// type has no registered factory.
type UnknownNodeTypeError struct {
	Type string
}

func NewUnknownNodeTypeError(nodeType string) error {
	return &UnknownNodeTypeError{Type: nodeType}
}

func (e *UnknownNodeTypeError) Error() string {
	return fmt.Sprintf("unknown node type: %q is not registered", e.Type)
}

// InvalidNodeBindingError is raised when a registered factory does not
// produce a valid node instance (the Go analogue of "discovered name is
// not a class").
type InvalidNodeBindingError struct {
	Type string
	Err  error
}

func NewInvalidNodeBindingError(nodeType string, err error) error {
	return &InvalidNodeBindingError{Type: nodeType, Err: err}
}

func (e *InvalidNodeBindingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid node binding: %q: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("invalid node binding: %q did not produce a node", e.Type)
}

func (e *InvalidNodeBindingError) Unwrap() error { return e.Err }

// EdgeTypeError is raised when a producer's declared output type is
// incompatible with a consumer's declared input type.
type EdgeTypeError struct {
	Producer     string
	Consumer     string
	OutputType   string
	InputType    string
}

func NewEdgeTypeError(producer, consumer, outputType, inputType string) error {
	return &EdgeTypeError{Producer: producer, Consumer: consumer, OutputType: outputType, InputType: inputType}
}

func (e *EdgeTypeError) Error() string {
	return fmt.Sprintf("edge type error: %s (output: %s) -> %s (input: %s) are incompatible",
		e.Producer, e.OutputType, e.Consumer, e.InputType)
}

// UnknownEntrypointError is raised when the pipeline's entrypoint names no
// instantiated node.
type UnknownEntrypointError struct {
	Name string
}

func NewUnknownEntrypointError(name string) error {
	return &UnknownEntrypointError{Name: name}
}

func (e *UnknownEntrypointError) Error() string {
	return fmt.Sprintf("unknown entrypoint: %q is not a defined node", e.Name)
}

// MissingPipelineNameError is raised when the pipeline document omits
// pipeline.name.
type MissingPipelineNameError struct{}

func NewMissingPipelineNameError() error {
	return &MissingPipelineNameError{}
}

func (e *MissingPipelineNameError) Error() string {
	return "missing pipeline name: pipeline.name is required"
}

// MissingRequiredConfigError is raised by a node constructor when one of
// its own required configuration keys is absent.
type MissingRequiredConfigError struct {
	Node string
	Key  string
}

func NewMissingRequiredConfigError(node, key string) error {
	return &MissingRequiredConfigError{Node: node, Key: key}
}

func (e *MissingRequiredConfigError) Error() string {
	return fmt.Sprintf("missing required config: node %q requires config key %q", e.Node, e.Key)
}

// NodeExecutionError wraps an error returned by a node's Run or Finalize
// method. It is fatal for the whole pipeline run. Panics are not recovered
// into this type.
type NodeExecutionError struct {
	Node string
	Err  error
}

func NewNodeExecutionError(node string, err error) error {
	return &NodeExecutionError{Node: node, Err: err}
}

func (e *NodeExecutionError) Error() string {
	return fmt.Sprintf("node %q failed: %v", e.Node, e.Err)
}

func (e *NodeExecutionError) Unwrap() error { return e.Err }
