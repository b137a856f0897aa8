// Package distribution defines the integer validity oracles consulted while
// generating and shrinking structural traces.
//
// What:
//
//   - Int answers "is this value still valid" and draws fresh values.
//   - Bounded additionally exposes its inclusive [Min, Max] range.
//   - Range, Natural, Unbounded and Filter cover the shapes used by gen.
//
// Why:
//
//	The shrinker never decides which integers make sense; it proposes smaller
//	values and asks the distribution that produced the original value whether
//	the proposal is still admissible. A bounded distribution also tells the
//	shrinker where the floor is, so the first proposal is the smallest legal
//	value rather than zero.
//
// Contract:
//
//   - IsValidValue must be pure and deterministic for a given instance.
//   - Generate must only return values for which IsValidValue is true.
//
// Errors:
//
//	Constructors panic on meaningless input (min > max, nil predicate); the
//	oracle methods themselves never fail.
package distribution
