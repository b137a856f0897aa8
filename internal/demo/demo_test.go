package demo_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvshrink/internal/demo"
	"github.com/katalvlaran/lvshrink/property"
)

func TestAll_SortedByName(t *testing.T) {
	t.Parallel()

	var names []string
	for _, p := range demo.All() {
		names = append(names, p.Name)
		assert.NotEmpty(t, p.Description)
	}
	assert.Equal(t, []string{"no-duplicates", "sorted", "sum-below", "tree-depth"}, names)
}

func TestLookup_Unknown(t *testing.T) {
	t.Parallel()

	_, err := demo.Lookup("nope")
	assert.ErrorIs(t, err, demo.ErrUnknownProperty)
}

// TestProperties_FailAndRecheck minimizes every demo property and replays
// the token.
func TestProperties_FailAndRecheck(t *testing.T) {
	t.Parallel()

	for _, p := range demo.All() {
		p := p
		t.Run(p.Name, func(t *testing.T) {
			t.Parallel()

			out, err := p.Check(context.Background(), property.WithIterations(1000))
			require.NoError(t, err)
			require.NotNil(t, out, "every demo property has counterexamples")
			assert.Equal(t, p.Name, out.Property)
			assert.NotEmpty(t, out.Token)

			value, failing, err := p.Recheck(out.Token)
			require.NoError(t, err)
			assert.True(t, failing)
			assert.Equal(t, out.Minimized, value)
		})
	}
}

func TestNoDuplicates_MinimalPair(t *testing.T) {
	t.Parallel()

	p, err := demo.Lookup("no-duplicates")
	require.NoError(t, err)
	out, err := p.Check(context.Background())
	require.NoError(t, err)
	require.NotNil(t, out)

	fields := strings.Fields(strings.Trim(out.Minimized, "[]"))
	require.Len(t, fields, 2)
	assert.Equal(t, fields[0], fields[1])
}

func TestTreeDepth_Collapses(t *testing.T) {
	t.Parallel()

	p, err := demo.Lookup("tree-depth")
	require.NoError(t, err)
	out, err := p.Check(context.Background(), property.WithIterations(500))
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, demo.MaxTreeDepth+1, depthOf(out.Minimized), out.Minimized)
}

// depthOf reads the depth of a rendered tree from its deepest parenthesis.
func depthOf(s string) int {
	depth, best := 0, 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
			best = max(best, depth)
		case ')':
			depth--
		}
	}
	return best + 1
}

func TestTree_String(t *testing.T) {
	t.Parallel()

	tr := &demo.Tree{Left: &demo.Tree{Value: 1}, Right: &demo.Tree{Left: &demo.Tree{Value: 2}, Right: &demo.Tree{Value: 3}}}
	assert.Equal(t, "(1 (2 3))", tr.String())
	assert.Equal(t, 3, tr.Depth())
}
