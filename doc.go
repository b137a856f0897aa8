// Package lvshrink is a structural shrinking engine for property-based
// testing: when a randomly generated input breaks a property, it searches
// for a smaller input that still breaks it.
//
// 🚀 What is lvshrink?
//
//	Every random decision a generator makes is recorded as a leaf in a
//	persistent trace tree. Shrinking edits that tree instead of the value:
//		• integers move toward their simplest valid value (floor, |v|, v/2)
//		• runs of list elements are deleted, longest runs first
//		• recursive structures collapse into one of their own sub-instances
//	Replaying an edited tree through the generator yields the candidate input.
//
// ✨ Why a trace tree?
//
//   - Generator-agnostic – any combinator built on gen shrinks for free
//   - Always valid – candidates are replayed, never invented
//   - Persistent – edits share every untouched subtree
//   - Replayable – the minimized trace packs into a short recheck token
//
// Packages:
//
//	distribution/ - integer validity oracles (ranges, filters)
//	structure/    - trace tree, node identity, lazy shrink steps, builder
//	replay/       - varint serialisation and LZ4 recheck tokens
//	gen/          - generation combinators recording into the trace tree
//	shrinker/     - the minimization driver with logging, tracing and metrics
//	property/     - check loop: generate, detect a failure, minimize, tokenize
//	cmd/lvshrink  - CLI running built-in properties and rechecking tokens
//
// Quick example:
//
//	lists := gen.List(gen.Int(distribution.Range(0, 100)), distribution.Natural(10))
//	f, _ := property.Check(ctx, lists, func(xs []int) bool { return len(xs) < 3 })
//	fmt.Println(f.Minimized) // [0 0 0]
//
//	go get github.com/katalvlaran/lvshrink
package lvshrink
