// Package join provides the "join" node: a fan-in point that waits for a
// configured set of input keys and emits their merged values under a
// single output key.
package join

import (
	"context"

	"github.com/flowforge/pipeline/internal/node"
	"github.com/flowforge/pipeline/internal/nodeconfig"
	"github.com/flowforge/pipeline/nodes"
	pipelineerrors "github.com/flowforge/pipeline/pkg/errors"
)

func init() {
	nodes.Register("join", New)
}

const defaultOutputKey = "data"

type config struct {
	Inputs []string `mapstructure:"inputs"`
	Key    string   `mapstructure:"key"`
}

// Join buffers until every configured input key has arrived, then emits
// the assembled mapping under its output key.
type Join struct {
	name string
	cfg  config
}

// New constructs a Join node from its params tree. "inputs" is required;
// "key" defaults to "data".
func New(name string, params map[string]any) (node.Node, error) {
	var cfg config
	if err := nodeconfig.Decode(params, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Inputs) == 0 {
		return nil, pipelineerrors.NewMissingRequiredConfigError(name, "inputs")
	}
	if cfg.Key == "" {
		cfg.Key = defaultOutputKey
	}
	return &Join{name: name, cfg: cfg}, nil
}

func (j *Join) Name() string { return j.name }

func (j *Join) RequiredInputs() []string { return j.cfg.Inputs }

func (j *Join) Run(ctx context.Context, input map[string]any) (node.Result, error) {
	return node.Map(map[string]any{j.cfg.Key: input}), nil
}
