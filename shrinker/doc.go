// Package shrinker drives the lazy shrink steps of a structure tree until no
// step produces a smaller tree that still fails the predicate.
//
// Loop:
//
//	step := root.Shrink()
//	for step != nil {
//	    candidate := step.Apply(current)
//	    skip nil, no-op and duplicate candidates      → step = step.OnFailure()
//	    predicate(candidate) reports a failure          → current = candidate; step = step.OnSuccess(candidate)
//	    otherwise                                        → step = step.OnFailure()
//	}
//
// Duplicates are suppressed twice: a step whose key was already tried against
// the same current tree is not applied, and a candidate value-equal to one
// already evaluated is not evaluated again.
//
// Minimize stops early when the context is done (returning ctx.Err() with
// the best tree so far) or when WithMaxAttempts is reached (Result.Truncated).
// Invariant violations raised by the structure package are returned as
// errors wrapping *structure.InvariantError.
//
// Observability is opt-in: a discard slog handler, a no-op tracer and a no-op
// meter are used unless WithLogger, WithTracer or WithMeter say otherwise.
package shrinker
