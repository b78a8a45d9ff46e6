package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowforge/pipeline/internal/node"
)

var errFailing = errors.New("node exploded")

// testNode is a configurable Node double: its Run/Finalize behavior is
// supplied by the test, and every Run call is recorded for later assertion.
type testNode struct {
	name     string
	required []string
	runFn    func(input map[string]any) (node.Result, error)
	finalFn  func() (node.Result, error)

	mu    sync.Mutex
	calls []map[string]any
}

func (n *testNode) Name() string { return n.name }

func (n *testNode) Run(ctx context.Context, input map[string]any) (node.Result, error) {
	n.mu.Lock()
	n.calls = append(n.calls, input)
	n.mu.Unlock()
	if n.runFn != nil {
		return n.runFn(input)
	}
	return node.Nothing(), nil
}

func (n *testNode) RequiredInputs() []string { return n.required }

func (n *testNode) Finalize(ctx context.Context) (node.Result, error) {
	if n.finalFn != nil {
		return n.finalFn()
	}
	return node.Nothing(), nil
}

func (n *testNode) callCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

func (n *testNode) lastCall() map[string]any {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.calls) == 0 {
		return nil
	}
	return n.calls[len(n.calls)-1]
}

func buildGraph(t *testing.T, nodes []*testNode, edges [][2]string) *Graph {
	t.Helper()
	g := NewGraph()
	for _, n := range nodes {
		g.AddNode(n)
	}
	for _, e := range edges {
		g.Connect(e[0], e[1])
	}
	return g
}

func TestLinearChain(t *testing.T) {
	t.Parallel()

	a := &testNode{name: "A", runFn: func(map[string]any) (node.Result, error) {
		return node.Map(map[string]any{"data": 1}), nil
	}}
	b := &testNode{name: "B", required: []string{"data"}, runFn: func(map[string]any) (node.Result, error) {
		return node.Map(map[string]any{"data": 2}), nil
	}}
	c := &testNode{name: "C", required: []string{"data"}}

	g := buildGraph(t, []*testNode{a, b, c}, [][2]string{{"A", "B"}, {"B", "C"}})
	e := New(g, 4, nil)

	require.NoError(t, e.Run(context.Background(), "A", nil, true, nil))
	require.Equal(t, 1, c.callCount())
	require.Equal(t, map[string]any{"data": 2}, c.lastCall())
}

func TestFanInJoin(t *testing.T) {
	t.Parallel()

	j := &testNode{name: "J", required: []string{"data_1", "data_2"}}
	m := &testNode{name: "M", runFn: func(map[string]any) (node.Result, error) {
		return node.Map(map[string]any{"data_1": "X"}), nil
	}}
	n := &testNode{name: "N", runFn: func(map[string]any) (node.Result, error) {
		return node.Map(map[string]any{"data_2": "Y"}), nil
	}}
	start := &testNode{name: "start", runFn: func(map[string]any) (node.Result, error) {
		return node.Value("go"), nil
	}}

	g := buildGraph(t, []*testNode{start, m, n, j}, [][2]string{
		{"start", "M"}, {"start", "N"}, {"M", "J"}, {"N", "J"},
	})
	e := New(g, 4, nil)

	require.NoError(t, e.Run(context.Background(), "start", nil, true, nil))
	require.Equal(t, 1, j.callCount())
	require.Equal(t, map[string]any{"data_1": "X", "data_2": "Y"}, j.lastCall())
}

func TestFanOutByDistinctKey(t *testing.T) {
	t.Parallel()

	// P emits two keys from one map result; each child's own required-input
	// key selects the value meant for it out of the broadcast delivery.
	p := &testNode{name: "P", runFn: func(map[string]any) (node.Result, error) {
		return node.Map(map[string]any{"left": 10, "right": 20}), nil
	}}
	l := &testNode{name: "L", required: []string{"left"}}
	r := &testNode{name: "R", required: []string{"right"}}

	g := buildGraph(t, []*testNode{p, l, r}, [][2]string{{"P", "L"}, {"P", "R"}})
	e := New(g, 4, nil)

	require.NoError(t, e.Run(context.Background(), "P", nil, true, nil))
	require.Equal(t, 1, l.callCount())
	require.Equal(t, 1, r.callCount())
	require.Equal(t, map[string]any{"left": 10}, l.lastCall())
	require.Equal(t, map[string]any{"right": 20}, r.lastCall())
}

func TestDeferredEmissionRunsOnlyAtFinalize(t *testing.T) {
	t.Parallel()

	child := &testNode{name: "child", required: []string{"data"}}
	d := &testNode{
		name: "D",
		runFn: func(map[string]any) (node.Result, error) {
			return node.Nothing(), nil
		},
		finalFn: func() (node.Result, error) {
			return node.Map(map[string]any{"data": 42}), nil
		},
	}

	g := buildGraph(t, []*testNode{d, child}, [][2]string{{"D", "child"}})
	e := New(g, 4, nil)

	require.NoError(t, e.Run(context.Background(), "D", nil, true, nil))
	require.Equal(t, 1, d.callCount())
	require.Equal(t, 1, child.callCount())
	require.Equal(t, map[string]any{"data": 42}, child.lastCall())
}

func TestEntryWithNoRequiredInputsRunsOnceOnNilTrigger(t *testing.T) {
	t.Parallel()

	entry := &testNode{name: "entry"}
	g := buildGraph(t, []*testNode{entry}, nil)
	e := New(g, 4, nil)

	require.NoError(t, e.Run(context.Background(), "entry", nil, true, nil))
	require.Equal(t, 1, entry.callCount())
	require.Nil(t, entry.lastCall())
}

func TestKeyedDeliveryToUnconstrainedNodeCarriesThePair(t *testing.T) {
	t.Parallel()

	producer := &testNode{name: "producer", runFn: func(map[string]any) (node.Result, error) {
		return node.Map(map[string]any{"data": "payload"}), nil
	}}
	sink := &testNode{name: "sink"}

	g := buildGraph(t, []*testNode{producer, sink}, [][2]string{{"producer", "sink"}})
	e := New(g, 4, nil)

	require.NoError(t, e.Run(context.Background(), "producer", nil, true, nil))
	require.Equal(t, 1, sink.callCount())
	require.Equal(t, map[string]any{"data": "payload"}, sink.lastCall())
}

func TestReadinessWaitsForEveryRequiredKey(t *testing.T) {
	t.Parallel()

	target := &testNode{name: "target", required: []string{"a", "b"}}
	g := buildGraph(t, []*testNode{target}, nil)
	e := New(g, 4, nil)

	key := "a"
	require.NoError(t, e.deliver(context.Background(), newDispatcher(context.Background(), 4), "target", &key, 1))
	require.Equal(t, 0, target.callCount())

	key = "b"
	require.NoError(t, e.deliver(context.Background(), newDispatcher(context.Background(), 4), "target", &key, 2))
	require.Equal(t, 1, target.callCount())
	require.Equal(t, map[string]any{"a": 1, "b": 2}, target.lastCall())
}

func TestBufferIsClearedAfterExecution(t *testing.T) {
	t.Parallel()

	target := &testNode{name: "target", required: []string{"a", "b"}}
	g := buildGraph(t, []*testNode{target}, nil)
	e := New(g, 4, nil)

	ctx := context.Background()
	ka, kb := "a", "b"
	require.NoError(t, e.deliver(ctx, newDispatcher(ctx, 4), "target", &ka, 1))
	require.NoError(t, e.deliver(ctx, newDispatcher(ctx, 4), "target", &kb, 2))
	require.Equal(t, 1, target.callCount())

	// Only "a" delivered again: must not re-execute from stale "b".
	require.NoError(t, e.deliver(ctx, newDispatcher(ctx, 4), "target", &ka, 3))
	require.Equal(t, 1, target.callCount())

	require.NoError(t, e.deliver(ctx, newDispatcher(ctx, 4), "target", &kb, 4))
	require.Equal(t, 2, target.callCount())
	require.Equal(t, map[string]any{"a": 3, "b": 4}, target.lastCall())
}

func TestMapResultDispatchesExactlyNTimesM(t *testing.T) {
	t.Parallel()

	producer := &testNode{name: "producer", runFn: func(map[string]any) (node.Result, error) {
		return node.Map(map[string]any{"k1": 1, "k2": 2, "k3": 3}), nil
	}}
	childA := &testNode{name: "childA"}
	childB := &testNode{name: "childB"}

	g := buildGraph(t, []*testNode{producer, childA, childB}, [][2]string{
		{"producer", "childA"}, {"producer", "childB"},
	})
	e := New(g, 4, nil)

	require.NoError(t, e.Run(context.Background(), "producer", nil, true, nil))

	// Each child has no required inputs, so it executes once per delivery:
	// 3 keys * 2 children = 6 total executions across both children.
	require.Equal(t, 3, childA.callCount())
	require.Equal(t, 3, childB.callCount())
}

func TestEdgeSymmetry(t *testing.T) {
	t.Parallel()

	a := &testNode{name: "A"}
	b := &testNode{name: "B"}
	g := buildGraph(t, []*testNode{a, b}, [][2]string{{"A", "B"}})

	require.Contains(t, g.Outputs("A"), "B")
	require.Contains(t, g.Inputs("B"), "A")
	require.NotContains(t, g.Outputs("B"), "A")
	require.NotContains(t, g.Inputs("A"), "B")
}

func TestOrderedPairsResultDispatchesEachPairToEveryChild(t *testing.T) {
	t.Parallel()

	producer := &testNode{name: "producer", runFn: func(map[string]any) (node.Result, error) {
		return node.Pairs([]node.Pair{{Key: "k1", Value: 1}, {Key: "k2", Value: 2}}), nil
	}}
	child := &testNode{name: "child"}

	g := buildGraph(t, []*testNode{producer, child}, [][2]string{{"producer", "child"}})
	e := New(g, 4, nil)

	require.NoError(t, e.Run(context.Background(), "producer", nil, true, nil))
	require.Equal(t, 2, child.callCount())
}

func TestUnknownEntrypointFails(t *testing.T) {
	t.Parallel()

	g := NewGraph()
	e := New(g, 4, nil)

	err := e.Run(context.Background(), "missing", nil, true, nil)
	require.Error(t, err)
}

func TestNodeExecutionErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := &testNode{name: "boom", runFn: func(map[string]any) (node.Result, error) {
		return node.Nothing(), errFailing
	}}
	g := buildGraph(t, []*testNode{boom}, nil)
	e := New(g, 4, nil)

	err := e.Run(context.Background(), "boom", nil, true, nil)
	require.Error(t, err)
}
