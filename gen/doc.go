// Package gen provides the generation combinators that record their random
// decisions as a structure tree, and replay a tree (or a decoded replay
// stream) back into a value.
//
// What:
//
//   - Data is the decision stream a generator draws from: fresh randomness,
//     a flat replay stream, or a candidate tree produced by the shrinker.
//   - Generator[T] couples a name and an identity (used by recursion
//     collapse) with the function that draws a T from Data.
//   - Int, Bool, Const, Map, Zip, List, OneOf, Filter and Recursive build
//     larger generators from smaller ones.
//
// Shape conventions:
//
//	Every Draw opens a sub-structure tagged with the drawn generator. List
//	records its length first and each element in its own sub-structure, which
//	is the list shape the shrinker recognises. Recursive tags each recursive
//	instance with the same generator, which enables recursion collapse.
//
// Errors:
//
//   - ErrCannotReplay: a replayed tree or stream does not line up with the
//     generator (wrong node kind, invalid value, exhausted input).
//   - ErrFilterExhausted: Filter found no acceptable value.
package gen
