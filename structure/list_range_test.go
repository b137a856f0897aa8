package structure_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvshrink/distribution"
	"github.com/katalvlaran/lvshrink/structure"
)

func list(count int, elems ...int) *structure.Node {
	parts := []part{leaf(count)}
	for _, e := range elems {
		parts = append(parts, sub(nil, leaf(e)))
	}
	return tree(nil, parts...)
}

// TestListRange_OnlyForListShape compares a malformed count with a valid one.
func TestListRange_OnlyForListShape(t *testing.T) {
	t.Parallel()

	malformed := list(2, 5, 6, 7)
	require.False(t, malformed.IsList())
	step := malformed.Shrink()
	require.NotNil(t, step)
	assert.False(t, strings.HasPrefix(step.Key().Change, "remove"))
	assert.Equal(t, "(2, (5), (6), (0))", step.Apply(malformed).String())

	valid := list(3, 5, 6, 7)
	require.True(t, valid.IsList())
	step = valid.Shrink()
	require.NotNil(t, step)
	assert.True(t, strings.HasPrefix(step.Key().Change, "remove"))
	assert.Equal(t, "(0)", step.Apply(valid).String())
}

// TestListRange_Order checks longest runs first, tail to head, then elements.
func TestListRange_Order(t *testing.T) {
	t.Parallel()

	root := list(3, 5, 6, 7)
	var order []string
	step := root.Shrink()
	for step != nil && strings.HasPrefix(step.Key().Change, "remove") {
		order = append(order, step.Apply(root).String())
		step = step.OnFailure()
	}
	assert.Equal(t, []string{
		"(0)",
		"[2, (5), (6)]",
		"[2, (5), (7)]",
		"[2, (6), (7)]",
	}, order)

	require.NotNil(t, step, "element shrinking follows range deletion")
	assert.Equal(t, "[3, (5), (6), (0)]", step.Apply(root).String())
}

// TestListRange_Minimize keeps the one element that matters.
func TestListRange_Minimize(t *testing.T) {
	t.Parallel()

	root := list(3, 5, 6, 7)
	hasBig := func(n *structure.Node) bool {
		for i := 1; i < n.Len(); i++ {
			if intAt(n, i, 0) >= 7 {
				return true
			}
		}
		return false
	}
	got, _ := minimize(root, hasBig, true)
	assert.Equal(t, "[1, (7)]", got.String())
}

// TestListRange_CountDistribution rejects removals the count cannot express.
func TestListRange_CountDistribution(t *testing.T) {
	t.Parallel()

	root := tree(nil, leafIn(3, distribution.Range(2, 10)), sub(nil, leaf(1)), sub(nil, leaf(2)), sub(nil, leaf(3)))
	step := root.Shrink()
	require.NotNil(t, step)
	assert.Nil(t, step.Apply(root), "count 0 is outside [2,10]")

	got, _ := minimize(root, func(*structure.Node) bool { return true }, true)
	assert.Equal(t, 2, intAt(got, 0))
	assert.Equal(t, 3, got.Len())
}

// TestListRange_InheritorShape fails fast when a wrapped child step sees its
// parent change shape.
func TestListRange_InheritorShape(t *testing.T) {
	t.Parallel()

	root := list(2, 5, 6)
	first := root.Shrink()
	require.NotNil(t, first)
	smaller := first.Apply(root)
	require.NotNil(t, smaller)

	step := first
	for step != nil && step.Key().Depth == 0 {
		step = step.OnFailure()
	}
	require.NotNil(t, step, "expected a child step after range deletion")

	defer func() {
		r := recover()
		ie, ok := r.(*structure.InvariantError)
		require.True(t, ok, "expected *InvariantError, got %v", r)
		assert.ErrorIs(t, ie, structure.ErrInheritorShape)
	}()
	step.OnSuccess(smaller)
}
