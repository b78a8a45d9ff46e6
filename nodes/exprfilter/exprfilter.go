// Package exprfilter provides the "expr_filter" node: it evaluates a
// compiled boolean expression against each delivered input mapping and
// forwards the mapping only when the expression holds.
package exprfilter

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/flowforge/pipeline/internal/node"
	"github.com/flowforge/pipeline/internal/nodeconfig"
	"github.com/flowforge/pipeline/nodes"
)

func init() {
	nodes.Register("expr_filter", New)
}

type config struct {
	Inputs []string `mapstructure:"inputs"`
}

// ExprFilter runs a boolean expression over each input mapping. The
// expression sees the mapping's keys as top-level variables.
type ExprFilter struct {
	name    string
	cfg     config
	program *vm.Program
}

// New constructs an ExprFilter node from its params tree. "expression" is
// required and must compile to a boolean; "inputs" optionally names the
// keys to wait for before evaluating.
func New(name string, params map[string]any) (node.Node, error) {
	source, err := nodeconfig.RequireString(name, "expression", params)
	if err != nil {
		return nil, err
	}

	var cfg config
	if err := nodeconfig.Decode(params, &cfg); err != nil {
		return nil, err
	}

	program, err := expr.Compile(source, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("node %q: compiling expression: %w", name, err)
	}

	return &ExprFilter{name: name, cfg: cfg, program: program}, nil
}

func (f *ExprFilter) Name() string { return f.name }

func (f *ExprFilter) RequiredInputs() []string { return f.cfg.Inputs }

func (f *ExprFilter) Run(ctx context.Context, input map[string]any) (node.Result, error) {
	env := input
	if env == nil {
		env = map[string]any{}
	}

	out, err := expr.Run(f.program, env)
	if err != nil {
		return node.Nothing(), fmt.Errorf("evaluating expression: %w", err)
	}

	if pass, ok := out.(bool); ok && pass {
		return node.Map(input), nil
	}
	return node.Nothing(), nil
}
