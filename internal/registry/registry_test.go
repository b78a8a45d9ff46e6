package registry

import (
	"context"
	"errors"
	"testing"

	pipelineerrors "github.com/flowforge/pipeline/pkg/errors"
	"github.com/stretchr/testify/require"
)

var errBrokenFactory = errors.New("factory exploded")

type fakeNode struct {
	name string
}

func (f *fakeNode) Name() string { return f.name }
func (f *fakeNode) Run(ctx context.Context, input map[string]any) (int, error) {
	return 0, nil
}

func TestRegisterAndNew(t *testing.T) {
	t.Parallel()

	r := New[*fakeNode]()
	require.NoError(t, r.Register("echo", func(name string, params map[string]any) (*fakeNode, error) {
		return &fakeNode{name: name}, nil
	}))

	n, err := r.New("echo", "n1", nil)
	require.NoError(t, err)
	require.Equal(t, "n1", n.Name())
}

func TestRegisterDuplicateTypeFails(t *testing.T) {
	t.Parallel()

	r := New[*fakeNode]()
	factory := func(name string, params map[string]any) (*fakeNode, error) { return &fakeNode{name: name}, nil }
	require.NoError(t, r.Register("echo", factory))
	require.Error(t, r.Register("echo", factory))
}

func TestNewUnknownTypeFails(t *testing.T) {
	t.Parallel()

	r := New[*fakeNode]()
	_, err := r.New("missing", "n1", nil)

	var target *pipelineerrors.UnknownNodeTypeError
	require.ErrorAs(t, err, &target)
	require.Equal(t, "missing", target.Type)
}

func TestNewInvalidBindingOnFactoryError(t *testing.T) {
	t.Parallel()

	r := New[*fakeNode]()
	require.NoError(t, r.Register("broken", func(name string, params map[string]any) (*fakeNode, error) {
		return nil, errBrokenFactory
	}))

	_, err := r.New("broken", "n1", nil)
	var target *pipelineerrors.InvalidNodeBindingError
	require.ErrorAs(t, err, &target)
}

func TestNewInvalidBindingOnNilInstance(t *testing.T) {
	t.Parallel()

	r := New[*fakeNode]()
	require.NoError(t, r.Register("nilmaker", func(name string, params map[string]any) (*fakeNode, error) {
		return nil, nil
	}))

	_, err := r.New("nilmaker", "n1", nil)
	var target *pipelineerrors.InvalidNodeBindingError
	require.ErrorAs(t, err, &target)
}

func TestListIsSorted(t *testing.T) {
	t.Parallel()

	r := New[*fakeNode]()
	factory := func(name string, params map[string]any) (*fakeNode, error) { return &fakeNode{name: name}, nil }
	require.NoError(t, r.Register("zeta", factory))
	require.NoError(t, r.Register("alpha", factory))

	require.Equal(t, []string{"alpha", "zeta"}, r.List())
}

func TestHas(t *testing.T) {
	t.Parallel()

	r := New[*fakeNode]()
	require.False(t, r.Has("echo"))
	require.NoError(t, r.Register("echo", func(name string, params map[string]any) (*fakeNode, error) {
		return &fakeNode{name: name}, nil
	}))
	require.True(t, r.Has("echo"))
}
