package traverse_test

import (
	"errors"
	"testing"

	"github.com/0xalexb/hjarta-settings/pathexpr"
	"github.com/0xalexb/hjarta-settings/traverse"
	"github.com/0xalexb/hjarta-settings/tree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pants builds {"PANTS": {"types": ["jeans", "slacks"], "total": 10}}.
func pants() *tree.OrderedMap {
	inner := tree.NewOrderedMap()
	inner.Set("types", tree.NewList(tree.String("jeans"), tree.String("slacks")))
	inner.Set("total", tree.Int(10))

	root := tree.NewOrderedMap()
	root.Set("PANTS", inner)

	return root
}

func TestTraverse_Get(t *testing.T) {
	t.Parallel()

	value, err := traverse.Traverse(pants(), "PANTS.types.1")
	require.NoError(t, err)
	assert.Equal(t, tree.String("slacks"), value)

	value, err = traverse.Traverse(pants(), "PANTS.total")
	require.NoError(t, err)
	assert.Equal(t, tree.Int(10), value)
}

func TestTraverse_VisitsEverySegment(t *testing.T) {
	t.Parallel()

	var steps []traverse.Step

	visitor := traverse.VisitorFunc(func(step traverse.Step) (traverse.Result, error) {
		steps = append(steps, step)

		return traverse.Continue(), nil
	})

	_, err := traverse.Traverse(pants(), "PANTS.types.0", traverse.WithVisitor(visitor))
	require.NoError(t, err)
	require.Len(t, steps, 3)

	assert.Equal(t, pathexpr.Key("PANTS"), steps[0].Segment)
	assert.Equal(t, pathexpr.Key("types"), steps[0].Next)
	assert.False(t, steps[0].Last)

	assert.Equal(t, pathexpr.Key("types"), steps[1].Segment)
	assert.Equal(t, pathexpr.Index(0), steps[1].Next)
	assert.IsType(t, &tree.List{}, steps[1].Value)

	assert.Equal(t, pathexpr.Index(0), steps[2].Segment)
	assert.Equal(t, tree.String("jeans"), steps[2].Value)
	assert.True(t, steps[2].Last)
	assert.Equal(t, "PANTS.types.0", steps[2].Path.String())
}

func TestTraverse_LastOnly(t *testing.T) {
	t.Parallel()

	calls := 0
	visitor := traverse.VisitorFunc(func(step traverse.Step) (traverse.Result, error) {
		calls++

		assert.True(t, step.Last)

		return traverse.Continue(), nil
	})

	_, err := traverse.Traverse(pants(), "PANTS.types.0", traverse.WithVisitor(visitor), traverse.LastOnly())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestTraverse_ReplaceRedirectsWalk(t *testing.T) {
	t.Parallel()

	alternate := tree.NewOrderedMap()
	alternate.Set("types", tree.NewList(tree.String("shorts")))

	visitor := traverse.VisitorFunc(func(step traverse.Step) (traverse.Result, error) {
		if step.Segment == pathexpr.Key("PANTS") {
			return traverse.Replace(alternate), nil
		}

		return traverse.Continue(), nil
	})

	value, err := traverse.Traverse(pants(), "PANTS.types.0", traverse.WithVisitor(visitor))
	require.NoError(t, err)
	assert.Equal(t, tree.String("shorts"), value)
}

func TestTraverse_VisitorErrorAborts(t *testing.T) {
	t.Parallel()

	errStop := errors.New("stop")
	visitor := traverse.VisitorFunc(func(traverse.Step) (traverse.Result, error) {
		return traverse.Continue(), errStop
	})

	_, err := traverse.Traverse(pants(), "PANTS.total", traverse.WithVisitor(visitor))
	require.ErrorIs(t, err, errStop)
}

func TestTraverse_StrictErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		expr    string
		wantErr error
	}{
		{name: "missing key", expr: "PANTS.color", wantErr: tree.ErrKeyNotFound},
		{name: "missing top level", expr: "SHIRTS", wantErr: tree.ErrKeyNotFound},
		{name: "index past end", expr: "PANTS.types.5", wantErr: tree.ErrIndexOutOfRange},
		{name: "key on list", expr: "PANTS.types.first", wantErr: tree.ErrTypeMismatch},
		{name: "index on map", expr: "PANTS.0", wantErr: tree.ErrTypeMismatch},
		{name: "through a scalar", expr: "PANTS.total.x", wantErr: tree.ErrTypeMismatch},
		{name: "malformed", expr: "PANTS.(types", wantErr: pathexpr.ErrMalformedPath},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := traverse.Traverse(pants(), tc.expr)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestTraverse_CreateMissingMaps(t *testing.T) {
	t.Parallel()

	root := tree.NewOrderedMap()

	value, err := traverse.Traverse(root, "A.b.c", traverse.CreateMissing())
	require.NoError(t, err)
	assert.IsType(t, &tree.OrderedMap{}, value)

	a, ok := root.Get("A")
	require.True(t, ok)
	b, err := a.(*tree.OrderedMap).GetSegment(pathexpr.Key("b"))
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, b.(*tree.OrderedMap).Keys())
}

func TestTraverse_CreateMissingListsFromNextSegment(t *testing.T) {
	t.Parallel()

	root := tree.NewOrderedMap()

	_, err := traverse.Traverse(root, "TEMPLATES.1.OPTIONS", traverse.CreateMissing(), traverse.WithDefault(tree.Null()))
	require.NoError(t, err)

	templates, _ := root.Get("TEMPLATES")
	list, ok := templates.(*tree.List)
	require.True(t, ok)
	require.Equal(t, 2, list.Len())
	assert.True(t, tree.IsPlaceholder(list.At(0)))

	entry, ok := list.At(1).(*tree.OrderedMap)
	require.True(t, ok)

	options, _ := entry.Get("OPTIONS")
	assert.Equal(t, tree.Null(), options)
}

func TestTraverse_CreateMissingGrowsExistingList(t *testing.T) {
	t.Parallel()

	root := tree.NewOrderedMap()
	root.Set("ITEMS", tree.NewList(tree.String("a")))

	_, err := traverse.Traverse(root, "ITEMS.2", traverse.CreateMissing(), traverse.WithDefault(tree.String("c")))
	require.NoError(t, err)

	items, _ := root.Get("ITEMS")
	list := items.(*tree.List)
	require.Equal(t, 3, list.Len())
	assert.Equal(t, tree.String("a"), list.At(0))
	assert.True(t, tree.IsPlaceholder(list.At(1)))
	assert.Equal(t, tree.String("c"), list.At(2))

	// an assigned element is never overwritten by creation
	_, err = traverse.Traverse(root, "ITEMS.0", traverse.CreateMissing(), traverse.WithDefault(tree.String("z")))
	require.NoError(t, err)
	assert.Equal(t, tree.String("a"), list.At(0))
	assert.Equal(t, 3, list.Len())
}

func TestTraverse_CreateMissingIsIdempotent(t *testing.T) {
	t.Parallel()

	root := tree.NewOrderedMap()

	first, err := traverse.Traverse(root, "A.b", traverse.CreateMissing())
	require.NoError(t, err)

	_, err = traverse.Traverse(root, "A.c", traverse.CreateMissing())
	require.NoError(t, err)

	second, err := traverse.Traverse(root, "A.b", traverse.CreateMissing())
	require.NoError(t, err)
	assert.Same(t, first, second)

	a, _ := root.Get("A")
	assert.Equal(t, []string{"b", "c"}, a.(*tree.OrderedMap).Keys())
}

func TestTraverse_CreateMissingStillChecksKinds(t *testing.T) {
	t.Parallel()

	root := pants()

	_, err := traverse.Traverse(root, "PANTS.types.color", traverse.CreateMissing())
	require.ErrorIs(t, err, tree.ErrTypeMismatch)

	_, err = traverse.Traverse(root, "PANTS.3", traverse.CreateMissing())
	require.ErrorIs(t, err, tree.ErrTypeMismatch)
}
