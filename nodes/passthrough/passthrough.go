// Package passthrough provides the "passthrough" node: it forwards its
// input mapping downstream unchanged. Its params may declare edge types
// ("input_type"/"output_type"), which makes it useful for asserting type
// boundaries in the middle of an otherwise untyped pipeline.
package passthrough

import (
	"context"

	"github.com/flowforge/pipeline/internal/node"
	"github.com/flowforge/pipeline/internal/nodeconfig"
	"github.com/flowforge/pipeline/nodes"
)

func init() {
	nodes.Register("passthrough", New)
}

type config struct {
	Inputs     []string `mapstructure:"inputs"`
	InputType  string   `mapstructure:"input_type"`
	OutputType string   `mapstructure:"output_type"`
}

// PassThrough forwards the input mapping it receives. With "inputs"
// configured it waits for those keys and forwards the joined mapping;
// without, it forwards each keyed delivery as it arrives. A run with an
// empty or nil input (a keyless delivery) emits nothing.
type PassThrough struct {
	name string
	cfg  config
}

// New constructs a PassThrough node from its params tree. Every key is
// optional.
func New(name string, params map[string]any) (node.Node, error) {
	var cfg config
	if err := nodeconfig.Decode(params, &cfg); err != nil {
		return nil, err
	}
	return &PassThrough{name: name, cfg: cfg}, nil
}

func (p *PassThrough) Name() string { return p.name }

func (p *PassThrough) RequiredInputs() []string { return p.cfg.Inputs }

func (p *PassThrough) InputType() string { return p.cfg.InputType }

func (p *PassThrough) OutputType() string { return p.cfg.OutputType }

func (p *PassThrough) Run(ctx context.Context, input map[string]any) (node.Result, error) {
	if len(input) == 0 {
		return node.Nothing(), nil
	}
	return node.Map(input), nil
}
