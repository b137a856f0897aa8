package shrinker_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/katalvlaran/lvshrink/distribution"
	"github.com/katalvlaran/lvshrink/shrinker"
	"github.com/katalvlaran/lvshrink/structure"
)

type key string

func (k key) GeneratorKey() any { return k }

// leaves builds (v0, v1, ...).
func leaves(vs ...int) *structure.Node {
	b := structure.NewBuilder(nil)
	for _, v := range vs {
		if err := b.AddInt(v, distribution.Unbounded()); err != nil {
			panic(err)
		}
	}
	return b.Build()
}

// list builds [n, (e0), (e1), ...].
func list(elems ...int) *structure.Node {
	b := structure.NewBuilder(key("list"))
	if err := b.AddInt(len(elems), distribution.Natural(100)); err != nil {
		panic(err)
	}
	for _, e := range elems {
		c, err := b.SubStructure(key("elem"))
		if err != nil {
			panic(err)
		}
		if err := c.AddInt(e, distribution.Unbounded()); err != nil {
			panic(err)
		}
	}
	return b.Build()
}

func first(n *structure.Node) int {
	return n.Child(0).(*structure.IntData).Value()
}

// TestMinimize_Three reaches 1 for "fails unless zero".
func TestMinimize_Three(t *testing.T) {
	t.Parallel()

	res, err := shrinker.Minimize(context.Background(), leaves(3),
		func(n *structure.Node) bool { return first(n) != 0 })
	require.NoError(t, err)
	assert.Equal(t, "(1)", res.Root.String())
	assert.Equal(t, 2, res.Attempts, "0 then 1")
	assert.Equal(t, 1, res.Successes)
	assert.GreaterOrEqual(t, res.Skipped, 1, "0 is proposed again and suppressed")
	assert.False(t, res.Truncated)
}

// TestMinimize_Unshrinkable returns the input untouched.
func TestMinimize_Unshrinkable(t *testing.T) {
	t.Parallel()

	root := leaves(0, 0)
	res, err := shrinker.Minimize(context.Background(), root, func(*structure.Node) bool { return true })
	require.NoError(t, err)
	assert.Same(t, root, res.Root)
	assert.Zero(t, res.Attempts)
}

// TestMinimize_List keeps only the element that matters.
func TestMinimize_List(t *testing.T) {
	t.Parallel()

	hasBig := func(n *structure.Node) bool {
		for i := 1; i < n.Len(); i++ {
			if first(n.Child(i).(*structure.Node)) >= 7 {
				return true
			}
		}
		return false
	}
	res, err := shrinker.Minimize(context.Background(), list(3, 5, 7, 2), hasBig)
	require.NoError(t, err)
	assert.Equal(t, "[1, (7)]", res.Root.String())
}

// TestMinimize_NoDuplicateEvaluations never shows the predicate the same
// candidate twice.
func TestMinimize_NoDuplicateEvaluations(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		elems := rapid.SliceOfN(rapid.IntRange(-20, 20), 0, 6).Draw(rt, "elems")
		limit := rapid.IntRange(0, 30).Draw(rt, "limit")
		root := list(elems...)

		seen := map[string]int{}
		pred := func(n *structure.Node) bool {
			seen[n.String()]++
			sum := 0
			for i := 1; i < n.Len(); i++ {
				sum += first(n.Child(i).(*structure.Node))
			}
			return sum > limit
		}
		res, err := shrinker.Minimize(context.Background(), root, pred)
		require.NoError(rt, err)
		for s, c := range seen {
			if c > 1 {
				rt.Fatalf("candidate %s evaluated %d times", s, c)
			}
		}
		assert.Equal(rt, len(seen), res.Attempts)
		if res.Root != root {
			assert.True(rt, pred(res.Root), "result must still fail")
		}
	})
}

// TestMinimize_MaxAttempts stops after the budget.
func TestMinimize_MaxAttempts(t *testing.T) {
	t.Parallel()

	res, err := shrinker.Minimize(context.Background(), leaves(1000, 1000),
		func(*structure.Node) bool { return false }, shrinker.WithMaxAttempts(3))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Attempts)
	assert.True(t, res.Truncated)
}

// TestMinimize_Canceled returns the context error with the best tree so far.
func TestMinimize_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	root := leaves(9)
	res, err := shrinker.Minimize(ctx, root, func(*structure.Node) bool { return true })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Same(t, root, res.Root)

	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	res, err = shrinker.Minimize(ctx, leaves(9, 9), func(n *structure.Node) bool {
		cancel()
		return true
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "(9, 0)", res.Root.String(), "the accepted candidate is kept")
	assert.Equal(t, 1, res.Attempts)
}

// TestMinimize_Observer sees every verdict in order.
func TestMinimize_Observer(t *testing.T) {
	t.Parallel()

	var verdicts []shrinker.Verdict
	_, err := shrinker.Minimize(context.Background(), leaves(3),
		func(n *structure.Node) bool { return first(n) != 0 },
		shrinker.WithObserver(func(e shrinker.Event) { verdicts = append(verdicts, e.Verdict) }))
	require.NoError(t, err)
	require.NotEmpty(t, verdicts)
	assert.Equal(t, shrinker.Rejected, verdicts[0])
	assert.Contains(t, verdicts, shrinker.Accepted)
	assert.Contains(t, verdicts, shrinker.Skipped)
	assert.Equal(t, "accepted", shrinker.Accepted.String())
}

// TestMinimize_Metrics records run totals on the given meter.
func TestMinimize_Metrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("test")

	_, err := shrinker.Minimize(context.Background(), leaves(3),
		func(n *structure.Node) bool { return first(n) != 0 }, shrinker.WithMeter(meter))
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if s, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range s.DataPoints {
					sums[m.Name] += dp.Value
				}
			}
		}
	}
	assert.Equal(t, int64(2), sums["lvshrink.shrink.attempts.total"])
	assert.Equal(t, int64(1), sums["lvshrink.shrink.successes.total"])
}

// TestMinimize_Logger writes a summary record at Info.
func TestMinimize_Logger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := shrinker.Minimize(context.Background(), leaves(3),
		func(n *structure.Node) bool { return first(n) != 0 }, shrinker.WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"shrink finished"`)
	assert.Contains(t, buf.String(), `"msg":"shrink trial"`)
	assert.Contains(t, buf.String(), `"result":"(1)"`)
}

type runIDKey struct{}

// ctxHandler copies a run id from the context onto every record.
type ctxHandler struct{ slog.Handler }

func (h ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := ctx.Value(runIDKey{}).(string); ok {
		r.AddAttrs(slog.String("run", id))
	}
	return h.Handler.Handle(ctx, r)
}

// TestMinimize_LoggerSeesContext hands the caller's context to the handler.
func TestMinimize_LoggerSeesContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(ctxHandler{slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})})
	ctx := context.WithValue(context.Background(), runIDKey{}, "r-7")
	_, err := shrinker.Minimize(ctx, leaves(3),
		func(n *structure.Node) bool { return first(n) != 0 }, shrinker.WithLogger(logger))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.Contains(t, line, `"run":"r-7"`)
	}
}

// TestMinimize_Arguments rejects nil inputs and panicking options.
func TestMinimize_Arguments(t *testing.T) {
	t.Parallel()

	_, err := shrinker.Minimize(context.Background(), nil, func(*structure.Node) bool { return true })
	assert.True(t, errors.Is(err, shrinker.ErrNilRoot))
	_, err = shrinker.Minimize(context.Background(), leaves(1), nil)
	assert.ErrorIs(t, err, shrinker.ErrNilPredicate)

	assert.Panics(t, func() { shrinker.WithLogger(nil) })
	assert.Panics(t, func() { shrinker.WithMaxAttempts(-1) })
	assert.Panics(t, func() { shrinker.WithTracer(nil) })
	assert.Panics(t, func() { shrinker.WithMeter(nil) })
	assert.Panics(t, func() { shrinker.WithObserver(nil) })
}
