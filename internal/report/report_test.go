package report_test

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvshrink/distribution"
	"github.com/katalvlaran/lvshrink/internal/demo"
	"github.com/katalvlaran/lvshrink/internal/report"
	"github.com/katalvlaran/lvshrink/shrinker"
	"github.com/katalvlaran/lvshrink/structure"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func tree(vs ...int) *structure.Node {
	b := structure.NewBuilder(nil)
	for _, v := range vs {
		c, err := b.SubStructure(nil)
		if err != nil {
			panic(err)
		}
		if err := c.AddInt(v, distribution.Unbounded()); err != nil {
			panic(err)
		}
	}
	return b.Build()
}

func outcome() *demo.Outcome {
	return &demo.Outcome{
		Property:      "sum-below",
		Iteration:     4,
		Seed:          9,
		Original:      "[700 12 900]",
		OriginalTree:  tree(700, 12, 900),
		Minimized:     "[1000]",
		MinimizedTree: tree(1000),
		Shrink:        shrinker.Result{Attempts: 1234, Successes: 9, Skipped: 3, Duration: 1500 * time.Microsecond},
		Token:         "AAUAAAA",
	}
}

func TestNewDocument(t *testing.T) {
	t.Parallel()

	doc := report.NewDocument("sum-below", 9, outcome())
	assert.Equal(t, "failed", doc.Status)
	require.NotNil(t, doc.Shrink)
	assert.Equal(t, 7, doc.Shrink.OriginalNodes)
	assert.Equal(t, 3, doc.Shrink.MinimalNodes)

	passed := report.NewDocument("sorted", 1, nil)
	assert.Equal(t, "passed", passed.Status)
	assert.Nil(t, passed.Shrink)
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, report.NewDocument("sum-below", 9, outcome())))
	out := buf.String()

	assert.Contains(t, out, "FAIL sum-below (seed 9, iteration 4)")
	assert.Contains(t, out, "minimized: [1000]")
	assert.Contains(t, out, "1,234")
	assert.Contains(t, out, "7 → 3")
	assert.Contains(t, out, "recheck:   AAUAAAA")

	buf.Reset()
	require.NoError(t, report.WriteText(&buf, report.NewDocument("sorted", 1, nil)))
	assert.Equal(t, "PASS sorted (seed 1)\n", buf.String())
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	want := report.NewDocument("sum-below", 9, outcome())
	require.NoError(t, report.WriteYAML(&buf, want))
	assert.Contains(t, buf.String(), "status: failed")

	var got report.Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, want, got)
}

func TestDiff(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[1 2]", report.Diff("[1 2]", "[1 2]"))
	assert.Equal(t, "{-a-}{+b+}", report.Diff("a", "b"))
	assert.Contains(t, report.Diff("[700 12 900]", "[1000]"), "{-")
}

func TestCountNodes(t *testing.T) {
	t.Parallel()

	assert.Zero(t, report.CountNodes(nil))
	assert.Equal(t, 1, report.CountNodes(tree()))
	assert.Equal(t, 5, report.CountNodes(tree(1, 2)))
}

func TestMetrics_Snapshot(t *testing.T) {
	t.Parallel()

	m, err := report.NewMetrics()
	require.NoError(t, err)
	defer func() { _ = m.Shutdown(context.Background()) }()

	b := structure.NewBuilder(nil)
	require.NoError(t, b.AddInt(3, distribution.Unbounded()))
	_, err = shrinker.Minimize(context.Background(), b.Build(),
		func(n *structure.Node) bool { return n.Child(0).(*structure.IntData).Value() != 0 },
		shrinker.WithMeter(m.Meter()))
	require.NoError(t, err)

	snap, err := m.Snapshot()
	require.NoError(t, err)
	assert.Contains(t, snap, "lvshrink_shrink_attempts")
	assert.Contains(t, snap, "lvshrink_shrink_successes")
}
