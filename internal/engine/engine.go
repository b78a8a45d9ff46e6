package engine

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"golang.org/x/sync/errgroup"

	"github.com/flowforge/pipeline/internal/logger"
	"github.com/flowforge/pipeline/internal/metrics"
	"github.com/flowforge/pipeline/internal/node"
	pipelineerrors "github.com/flowforge/pipeline/pkg/errors"
)

// DefaultMaxWorkers bounds how many deliveries may execute concurrently
// within a single run, absent an explicit override.
const DefaultMaxWorkers = 5

// Engine drives a Graph: it owns the per-node input buffer and dispatches
// ready nodes to a bounded worker pool.
type Engine struct {
	graph      *Graph
	buffer     *inputBuffer
	maxWorkers int
	collector  *metrics.Collector
}

// New returns an Engine driving graph, with concurrency bounded to
// maxWorkers (DefaultMaxWorkers if maxWorkers <= 0). collector may be nil.
func New(graph *Graph, maxWorkers int, collector *metrics.Collector) *Engine {
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers
	}
	return &Engine{
		graph:      graph,
		buffer:     newInputBuffer(),
		maxWorkers: maxWorkers,
		collector:  collector,
	}
}

// dispatcher bounds and tracks a set of concurrently running deliveries so
// a caller can wait for every one (transitively spawned) to settle and
// observe the first error any of them returned.
type dispatcher struct {
	group *errgroup.Group
	ctx   context.Context
	sem   chan struct{}
}

func newDispatcher(ctx context.Context, maxWorkers int) *dispatcher {
	g, gctx := errgroup.WithContext(ctx)
	return &dispatcher{group: g, ctx: gctx, sem: make(chan struct{}, maxWorkers)}
}

func (d *dispatcher) spawn(fn func() error) {
	d.group.Go(func() error {
		select {
		case d.sem <- struct{}{}:
		case <-d.ctx.Done():
			return d.ctx.Err()
		}
		defer func() { <-d.sem }()
		return fn()
	})
}

func (d *dispatcher) wait() error {
	return d.group.Wait()
}

// Run triggers the pipeline from entryName. If initialInput is non-empty,
// one delivery per (key, value) pair is dispatched in parallel to the
// entry node; otherwise a single keyless delivery is dispatched. When wait
// is true, Run blocks until every dispatched delivery (transitively)
// settles, runs the finalize phase, and returns the first error
// encountered by either phase. When wait is false, Run dispatches and
// returns immediately with a nil error.
func (e *Engine) Run(ctx context.Context, entryName string, initialInput map[string]any, wait bool, log *logger.Logger) error {
	if !e.graph.Has(entryName) {
		return pipelineerrors.NewUnknownEntrypointError(entryName)
	}
	if log == nil {
		log = logger.Nop()
	}

	runID := newRunID()
	runLog := log.WithFields(map[string]any{"run_id": runID, "entry": entryName})
	ctx = logger.WithContext(ctx, runLog)

	runLog.Info("run started")

	d := newDispatcher(ctx, e.maxWorkers)
	if len(initialInput) > 0 {
		for k, v := range initialInput {
			key, value := k, v
			d.spawn(func() error {
				return e.deliver(ctx, d, entryName, &key, value)
			})
		}
	} else {
		d.spawn(func() error {
			return e.deliver(ctx, d, entryName, nil, nil)
		})
	}

	if !wait {
		return nil
	}

	if err := d.wait(); err != nil {
		runLog.Error(err, "run failed")
		return err
	}

	if err := e.finalize(ctx); err != nil {
		runLog.Error(err, "finalize failed")
		return err
	}

	runLog.Info("run complete")
	return nil
}

func newRunID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return "unknown"
	}
	return id.String()
}

// deliver offers (key, value) to target, storing it in target's input
// buffer under key (when key is non-nil), then executes target if it has
// become ready. A node with no required inputs is always ready: it runs
// with just the delivered pair when one was keyed, and with a nil input
// map otherwise. One with required inputs is ready once every required
// key has been buffered, and runs with exactly those keys.
func (e *Engine) deliver(ctx context.Context, d *dispatcher, target string, key *string, value any) error {
	e.buffer.mu.Lock()
	v, ok := e.graph.vertices[target]
	if !ok {
		e.buffer.mu.Unlock()
		return nil
	}

	if key != nil {
		if e.buffer.data[target] == nil {
			e.buffer.data[target] = make(map[string]any)
		}
		e.buffer.data[target][*key] = value
	}

	var (
		ready     bool
		execInput map[string]any
	)
	if len(v.required) == 0 {
		ready = true
		if key != nil {
			execInput = map[string]any{*key: value}
		}
	} else {
		buf := e.buffer.data[target]
		ready = true
		for _, k := range v.required {
			if _, present := buf[k]; !present {
				ready = false
				break
			}
		}
		if ready {
			execInput = make(map[string]any, len(v.required))
			for _, k := range v.required {
				execInput[k] = buf[k]
			}
		}
	}
	e.buffer.mu.Unlock()

	if !ready {
		return nil
	}
	return e.execute(ctx, d, target, v, execInput)
}

func (e *Engine) execute(ctx context.Context, d *dispatcher, target string, v *vertex, input map[string]any) error {
	log := logger.FromContext(ctx)
	log.Debug("executing node: " + target)

	start := time.Now()
	result, err := v.node.Run(ctx, input)
	e.collector.ObserveExecution(target, "run", err, time.Since(start).Seconds())

	e.buffer.mu.Lock()
	delete(e.buffer.data, target)
	e.buffer.mu.Unlock()

	if err != nil {
		wrapped := pipelineerrors.NewNodeExecutionError(target, err)
		log.Error(wrapped, "node execution failed")
		return wrapped
	}

	return e.propagate(ctx, d, v, result)
}

// propagate routes result to every one of v's wired children, following
// the shape-specific dispatch rule for each Result kind.
func (e *Engine) propagate(ctx context.Context, d *dispatcher, v *vertex, result node.Result) error {
	switch result.Kind() {
	case node.KindNone:
		return nil

	case node.KindMap:
		for _, child := range v.outputs {
			for k, val := range result.AsMap() {
				if err := e.deliver(ctx, d, child, strPtr(k), val); err != nil {
					return err
				}
			}
		}
		return nil

	case node.KindPairs:
		for _, child := range v.outputs {
			for _, pair := range result.AsPairs() {
				child, pair := child, pair
				d.spawn(func() error {
					return e.deliver(ctx, d, child, strPtr(pair.Key), pair.Value)
				})
			}
		}
		return nil

	case node.KindValue:
		for _, child := range v.outputs {
			if err := e.deliver(ctx, d, child, nil, result.AsValue()); err != nil {
				return err
			}
		}
		return nil

	default:
		return nil
	}
}

// finalize invokes Finalize on every node that implements Finalizer, once
// the main traversal has settled, propagating any non-nil result exactly
// as a mapping-result from Run would be.
func (e *Engine) finalize(ctx context.Context) error {
	log := logger.FromContext(ctx)
	d := newDispatcher(ctx, e.maxWorkers)

	for _, name := range e.graph.Names() {
		v := e.graph.vertices[name]
		fin, ok := v.node.(node.Finalizer)
		if !ok {
			continue
		}
		d.spawn(func() error {
			log.Debug("finalizing node: " + v.node.Name())
			start := time.Now()
			result, err := fin.Finalize(ctx)
			e.collector.ObserveExecution(v.node.Name(), "finalize", err, time.Since(start).Seconds())
			if err != nil {
				return pipelineerrors.NewNodeExecutionError(v.node.Name(), err)
			}
			if result.IsNone() {
				return nil
			}
			return e.propagate(ctx, d, v, result)
		})
	}

	return d.wait()
}

func strPtr(s string) *string { return &s }
