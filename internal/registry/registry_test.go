package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopHandler(ctx context.Context, in Input) (*Result, error) {
	return Ok(nil, ""), nil
}

func TestRegisterRejectsDuplicateName(t *testing.T) {
	r := New()
	d := Descriptor{Name: "get_pods", Description: "list pods", Category: CategoryPods, Annotations: Annotations{ReadOnly: true}, Handler: noopHandler}
	require.NoError(t, r.Register(d))
	err := r.Register(d)
	assert.Error(t, err)
}

func TestRegisterRejectsDestructiveReadOnly(t *testing.T) {
	r := New()
	d := Descriptor{
		Name: "delete_resource", Description: "delete", Category: CategoryOperations,
		Annotations: Annotations{ReadOnly: true, Destructive: true},
		Handler:     noopHandler,
	}
	err := r.Register(d)
	assert.Error(t, err)
}

func TestListOrdersByCategoryThenName(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Descriptor{Name: "zzz", Description: "z", Category: CategoryPods, Handler: noopHandler}))
	require.NoError(t, r.Register(Descriptor{Name: "aaa", Description: "a", Category: CategoryPods, Handler: noopHandler}))
	require.NoError(t, r.Register(Descriptor{Name: "get_nodes", Description: "n", Category: CategoryCluster, Handler: noopHandler}))

	list := r.List()
	require.Len(t, list, 3)
	assert.Equal(t, CategoryCluster, list[0].Category)
	assert.Equal(t, "aaa", list[1].Name)
	assert.Equal(t, "zzz", list[2].Name)
}

func TestAnnotationsResolvesRegisteredTool(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Descriptor{
		Name: "drain_node", Description: "drain", Category: CategoryOperations,
		Annotations: Annotations{Destructive: true}, Handler: noopHandler,
	}))

	readOnly, destructive, ok := r.Annotations("drain_node")
	require.True(t, ok)
	assert.False(t, readOnly)
	assert.True(t, destructive)

	_, _, ok = r.Annotations("does_not_exist")
	assert.False(t, ok)
}

func TestLookupAndLen(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Descriptor{Name: "get_pods", Description: "list pods", Category: CategoryPods, Handler: noopHandler}))

	_, ok := r.Lookup("get_pods")
	assert.True(t, ok)
	assert.Equal(t, 1, r.Len())

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}
