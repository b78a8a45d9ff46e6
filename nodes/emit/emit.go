// Package emit provides the "emit" node: a source that produces a fixed
// set of key/value pairs from its configuration. It is the usual entry
// node of a demo pipeline, standing in for the readers this module does
// not ship.
package emit

import (
	"context"

	"github.com/flowforge/pipeline/internal/node"
	"github.com/flowforge/pipeline/internal/nodeconfig"
	"github.com/flowforge/pipeline/nodes"
	pipelineerrors "github.com/flowforge/pipeline/pkg/errors"
)

func init() {
	nodes.Register("emit", New)
}

type config struct {
	Values map[string]any `mapstructure:"values"`
}

// Emit produces its configured values as one mapping result per run.
type Emit struct {
	name string
	cfg  config
}

// New constructs an Emit node from its params tree. The "values" mapping
// is required.
func New(name string, params map[string]any) (node.Node, error) {
	var cfg config
	if err := nodeconfig.Decode(params, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Values) == 0 {
		return nil, pipelineerrors.NewMissingRequiredConfigError(name, "values")
	}
	return &Emit{name: name, cfg: cfg}, nil
}

func (e *Emit) Name() string { return e.name }

func (e *Emit) Run(ctx context.Context, input map[string]any) (node.Result, error) {
	return node.Map(e.cfg.Values), nil
}
