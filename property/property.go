package property

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvshrink/gen"
	"github.com/katalvlaran/lvshrink/replay"
	"github.com/katalvlaran/lvshrink/shrinker"
	"github.com/katalvlaran/lvshrink/structure"
)

var (
	// ErrNilGenerator indicates Check or Recheck was called without a generator.
	ErrNilGenerator = errors.New("property: nil generator")

	// ErrNilProperty indicates Check or Recheck was called without a property.
	ErrNilProperty = errors.New("property: nil property")
)

// Failure describes a counterexample and its minimized form.
type Failure[T any] struct {
	// Iteration is the zero-based trial that first failed.
	Iteration int
	Seed      int64

	Original      T
	OriginalTree  *structure.Node
	Minimized     T
	MinimizedTree *structure.Node

	// Cause is the recovered panic of the minimized value, if it panicked.
	Cause any

	Shrink shrinker.Result
	// Token replays the minimized value with Recheck.
	Token string
}

// outcome is the verdict of one property evaluation.
type outcome struct {
	failed bool
	cause  any
}

func evaluate[T any](prop func(T) bool, v T) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome{failed: true, cause: r}
		}
	}()
	return outcome{failed: !prop(v)}
}

// Check runs prop on random values from g. It returns nil when every trial
// passes, or the minimized first failure.
//
// A shrink error (context end, invariant violation) is returned together with
// the failure as far as it was minimized.
func Check[T any](ctx context.Context, g *gen.Generator[T], prop func(T) bool, opts ...Option) (*Failure[T], error) {
	if g == nil {
		return nil, ErrNilGenerator
	}
	if prop == nil {
		return nil, ErrNilProperty
	}
	cfg := newConfig(opts...)
	rng := rand.New(rand.NewSource(cfg.seed))

	for i := 0; i < cfg.iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, trace, err := gen.Generate(g, rng)
		if err != nil {
			return nil, fmt.Errorf("generate %s (iteration %d): %w", g.Name(), i, err)
		}
		if !evaluate(prop, v).failed {
			continue
		}
		cfg.logger.Info("property failed", "generator", g.Name(), "iteration", i, "value", fmt.Sprint(v))
		return minimizeFailure(ctx, cfg, g, prop, i, v, trace)
	}
	cfg.logger.Info("property passed", "generator", g.Name(), "iterations", cfg.iterations)
	return nil, nil
}

func minimizeFailure[T any](
	ctx context.Context, cfg *config,
	g *gen.Generator[T], prop func(T) bool,
	iteration int, original T, trace *structure.Node,
) (*Failure[T], error) {
	stillFails := func(candidate *structure.Node) bool {
		v, err := gen.FromTree(g, candidate)
		if err != nil {
			return false
		}
		return evaluate(prop, v).failed
	}

	res, shrinkErr := shrinker.Minimize(ctx, trace, stillFails, cfg.shrink...)

	f := &Failure[T]{
		Iteration:    iteration,
		Seed:         cfg.seed,
		Original:     original,
		OriginalTree: trace,
		Shrink:       res,
	}
	minimized, clean, err := gen.Rebuild(g, res.Root)
	if err != nil {
		return nil, fmt.Errorf("rebuild minimized %s: %w", g.Name(), err)
	}
	f.Minimized, f.MinimizedTree = minimized, clean
	f.Cause = evaluate(prop, minimized).cause

	f.Token, err = replay.EncodeToken(structure.Serialize(clean))
	if err != nil {
		return nil, fmt.Errorf("encode token: %w", err)
	}
	cfg.logger.Info("counterexample minimized",
		"generator", g.Name(),
		"value", fmt.Sprint(minimized),
		"attempts", res.Attempts,
		"token", f.Token,
	)
	return f, shrinkErr
}

// Recheck replays token through g and reports whether prop still fails.
func Recheck[T any](g *gen.Generator[T], prop func(T) bool, token string) (T, bool, error) {
	var zero T
	if g == nil {
		return zero, false, ErrNilGenerator
	}
	if prop == nil {
		return zero, false, ErrNilProperty
	}
	payload, err := replay.DecodeToken(token)
	if err != nil {
		return zero, false, err
	}
	ints, err := replay.Decode(payload)
	if err != nil {
		return zero, false, err
	}
	v, _, err := gen.Replay(g, ints)
	if err != nil {
		return zero, false, err
	}
	return v, evaluate(prop, v).failed, nil
}
