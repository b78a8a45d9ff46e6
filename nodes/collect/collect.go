// Package collect provides the "collect" node: an accumulator that
// swallows every value delivered under its input key and emits the whole
// collection once, from the finalize phase.
package collect

import (
	"context"
	"sync"

	"github.com/flowforge/pipeline/internal/node"
	"github.com/flowforge/pipeline/internal/nodeconfig"
	"github.com/flowforge/pipeline/nodes"
)

func init() {
	nodes.Register("collect", New)
}

const defaultKey = "data"

type config struct {
	Input string `mapstructure:"input"`
	Key   string `mapstructure:"key"`
}

// Collect accumulates across executions and defers all output to
// Finalize. Run always returns nothing; the collection is emitted when the
// engine calls Finalize after traversal settles. DeferOutput reports true
// to declare this, though the engine itself does not consult the flag.
type Collect struct {
	name string
	cfg  config

	mu     sync.Mutex
	values []any
}

// New constructs a Collect node from its params tree. "input" names the
// key to accumulate and "key" the key to emit under; both default to
// "data".
func New(name string, params map[string]any) (node.Node, error) {
	var cfg config
	if err := nodeconfig.Decode(params, &cfg); err != nil {
		return nil, err
	}
	if cfg.Input == "" {
		cfg.Input = defaultKey
	}
	if cfg.Key == "" {
		cfg.Key = defaultKey
	}
	return &Collect{name: name, cfg: cfg}, nil
}

func (c *Collect) Name() string { return c.name }

func (c *Collect) RequiredInputs() []string { return []string{c.cfg.Input} }

func (c *Collect) DeferOutput() bool { return true }

func (c *Collect) Run(ctx context.Context, input map[string]any) (node.Result, error) {
	c.mu.Lock()
	c.values = append(c.values, input[c.cfg.Input])
	c.mu.Unlock()
	return node.Nothing(), nil
}

func (c *Collect) Finalize(ctx context.Context) (node.Result, error) {
	c.mu.Lock()
	collected := c.values
	c.values = nil
	c.mu.Unlock()

	if len(collected) == 0 {
		return node.Nothing(), nil
	}
	return node.Map(map[string]any{c.cfg.Key: collected}), nil
}
