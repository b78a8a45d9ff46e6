package node

// Kind identifies which shape a Result carries, per the heterogeneous
// payload design note: null, a mapping, an ordered list of pairs, or a bare
// value, each with different propagation semantics.
type Kind int

const (
	// KindNone is the zero value: a nil result. The branch terminates
	// unless the producing node defers output.
	KindNone Kind = iota
	// KindMap carries a set of key/value pairs broadcast, in full, to
	// every child.
	KindMap
	// KindPairs carries an ordered list of key/value pairs dispatched as
	// independent, potentially concurrent, deliveries.
	KindPairs
	// KindValue carries a single bare value delivered under no key.
	KindValue
)

// Pair is one (key, value) entry of an ordered-pairs result.
type Pair struct {
	Key   string
	Value any
}

// Result is the tagged variant returned by Run and Finalize.
type Result struct {
	kind  Kind
	m     map[string]any
	pairs []Pair
	value any
}

// Nothing returns the null result: the branch terminates here unless the
// node defers output.
func Nothing() Result { return Result{kind: KindNone} }

// Map returns a mapping result: every key is propagated to every child.
func Map(values map[string]any) Result { return Result{kind: KindMap, m: values} }

// Pairs returns an ordered-pairs result: each pair is dispatched to every
// child as an independent delivery.
func Pairs(pairs []Pair) Result { return Result{kind: KindPairs, pairs: pairs} }

// Value returns a bare-value result: delivered to every child under no
// key.
func Value(v any) Result { return Result{kind: KindValue, value: v} }

// Kind reports which case r holds.
func (r Result) Kind() Kind { return r.kind }

// IsNone reports whether r is the null result.
func (r Result) IsNone() bool { return r.kind == KindNone }

// AsMap returns r's key/value mapping. Only meaningful when Kind() ==
// KindMap.
func (r Result) AsMap() map[string]any { return r.m }

// AsPairs returns r's ordered pairs. Only meaningful when Kind() ==
// KindPairs.
func (r Result) AsPairs() []Pair { return r.pairs }

// AsValue returns r's bare value. Only meaningful when Kind() == KindValue.
func (r Result) AsValue() any { return r.value }
