package shrinker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/lvshrink/structure"
)

var (
	// ErrNilRoot indicates Minimize was called without a tree.
	ErrNilRoot = errors.New("shrinker: nil root")

	// ErrNilPredicate indicates Minimize was called without a predicate.
	ErrNilPredicate = errors.New("shrinker: nil predicate")
)

// Predicate reports whether candidate still exhibits the failure.
type Predicate func(candidate *structure.Node) (failing bool)

// Verdict is the outcome of one trial.
type Verdict int

const (
	// Skipped trials were not evaluated (no-op or duplicate).
	Skipped Verdict = iota
	// Accepted candidates still fail and replace the current tree.
	Accepted
	// Rejected candidates pass the predicate.
	Rejected
)

func (v Verdict) String() string {
	switch v {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	default:
		return "skipped"
	}
}

// Event describes one trial for WithObserver callbacks.
// Candidate is nil when the step did not apply.
type Event struct {
	Attempt   int
	Key       structure.StepKey
	Candidate *structure.Node
	Verdict   Verdict
}

// Result summarizes a run. Root is the smallest failing tree found, which is
// the input root when nothing smaller fails.
type Result struct {
	Root      *structure.Node
	Attempts  int
	Successes int
	Skipped   int
	Truncated bool
	Duration  time.Duration
}

// trialKey identifies a step applied to a particular current tree.
type trialKey struct {
	key     structure.StepKey
	current string
}

// Minimize shrinks root while pred keeps reporting a failure.
//
// Errors:
//   - ErrNilRoot, ErrNilPredicate for missing arguments.
//   - ctx.Err() when the context ends between trials; Result holds the best
//     tree so far.
//   - an error wrapping *structure.InvariantError on internal corruption.
//
// Complexity: each trial costs O(n) for fingerprinting plus the predicate.
func Minimize(ctx context.Context, root *structure.Node, pred Predicate, opts ...Option) (Result, error) {
	if root == nil {
		return Result{}, ErrNilRoot
	}
	if pred == nil {
		return Result{}, ErrNilPredicate
	}
	return minimize(ctx, root, root.Shrink, pred, opts...)
}

// minimize runs the loop starting from the step returned by first.
func minimize(ctx context.Context, root *structure.Node, first func() structure.Step, pred Predicate, opts ...Option) (res Result, err error) {
	cfg := newConfig(opts...)
	metrics, merr := newRunMetrics(cfg.meter)
	if merr != nil {
		cfg.logger.Warn("shrink metrics disabled", "error", merr)
	}

	start := time.Now()
	ctx, span := cfg.tracer.Start(ctx, "lvshrink.minimize",
		trace.WithAttributes(attribute.Int("shrink.root.children", root.Len())))
	res.Root = root

	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*structure.InvariantError)
			if !ok {
				span.End()
				panic(r)
			}
			err = fmt.Errorf("minimize after %d attempts: %w", res.Attempts, ie)
		}
		res.Duration = time.Since(start)
		metrics.record(ctx, res)
		finishSpan(span, res, err)
		cfg.logger.InfoContext(ctx, "shrink finished",
			"attempts", res.Attempts,
			"successes", res.Successes,
			"skipped", res.Skipped,
			"truncated", res.Truncated,
			"duration", res.Duration,
			"result", res.Root.String(),
		)
	}()

	r := &run{cfg: cfg, pred: pred, res: &res}
	err = r.loop(ctx, root, first())
	return res, err
}

// run carries the mutable state of one Minimize call.
type run struct {
	cfg  *config
	pred Predicate
	res  *Result

	fingerprint string
	tested      map[string]struct{}
	tried       map[trialKey]struct{}
}

func (r *run) loop(ctx context.Context, root *structure.Node, step structure.Step) error {
	current := root
	r.fingerprint = current.String()
	r.tested = map[string]struct{}{r.fingerprint: {}}
	r.tried = map[trialKey]struct{}{}

	for step != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.cfg.maxAttempts > 0 && r.res.Attempts >= r.cfg.maxAttempts {
			r.res.Truncated = true
			return nil
		}

		tk := trialKey{key: step.Key(), current: r.fingerprint}
		if _, dup := r.tried[tk]; dup {
			r.skip(ctx, tk.key, nil)
			step = step.OnFailure()
			continue
		}
		r.tried[tk] = struct{}{}

		candidate := step.Apply(current)
		if candidate == nil || candidate == current {
			r.skip(ctx, tk.key, nil)
			step = step.OnFailure()
			continue
		}
		fp := candidate.String()
		if _, dup := r.tested[fp]; dup {
			r.skip(ctx, tk.key, candidate)
			step = step.OnFailure()
			continue
		}
		r.tested[fp] = struct{}{}

		r.res.Attempts++
		if r.pred(candidate) {
			r.report(ctx, tk.key, candidate, Accepted)
			current = candidate
			r.fingerprint = fp
			r.res.Root = current
			r.res.Successes++
			step = step.OnSuccess(candidate)
			continue
		}
		r.report(ctx, tk.key, candidate, Rejected)
		step = step.OnFailure()
	}
	return nil
}

func (r *run) skip(ctx context.Context, key structure.StepKey, candidate *structure.Node) {
	r.res.Skipped++
	r.report(ctx, key, candidate, Skipped)
}

func (r *run) report(ctx context.Context, key structure.StepKey, candidate *structure.Node, v Verdict) {
	if r.cfg.logger.Enabled(ctx, slog.LevelDebug) {
		r.cfg.logger.DebugContext(ctx, "shrink trial",
			"attempt", r.res.Attempts,
			"key", describeKey(key),
			"verdict", v.String(),
		)
	}
	if r.cfg.observer != nil {
		r.cfg.observer(Event{Attempt: r.res.Attempts, Key: key, Candidate: candidate, Verdict: v})
	}
}

func describeKey(k structure.StepKey) string {
	target := "?"
	if k.Target != nil {
		target = k.Target.String()
	}
	return fmt.Sprintf("%s %s depth=%d", target, k.Change, k.Depth)
}

func finishSpan(span trace.Span, res Result, err error) {
	span.SetAttributes(
		attribute.Int("shrink.attempts", res.Attempts),
		attribute.Int("shrink.successes", res.Successes),
		attribute.Int("shrink.skipped", res.Skipped),
		attribute.Bool("shrink.truncated", res.Truncated),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
