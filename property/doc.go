// Package property runs a property against random inputs, minimizes the
// first counterexample with the shrinker and packs it into a replay token.
//
// Flow:
//
//	for i := 0; i < iterations; i++ {
//	    v, trace := gen.Generate(g, rng)
//	    if !prop(v) (or prop panics) → shrinker.Minimize(trace, stillFails)
//	}
//
// stillFails replays each candidate trace with gen.FromTree; a trace that no
// longer describes a value counts as passing. The minimized trace is
// re-recorded with gen.Rebuild before it is serialized, so Recheck can replay
// the token through gen.Replay.
package property
