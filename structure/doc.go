// Package structure holds the persistent trace tree behind every generated
// value and the lazy shrink steps that search it for smaller counterexamples.
//
// What:
//
//   - NodeID is a pointer-compared identity token issued in pre-order from a
//     per-tree sequence, optionally remembering the generator that made it.
//   - Element is a closed variant: *Node (an ordered composite) or *IntData
//     (one integer decision and the distribution it was drawn from).
//   - Builder is the mutable, append-only build phase; Build freezes it into
//     a *Node that is never mutated again.
//   - Step is one trial mutation with lazily computed success and failure
//     continuations.
//
// Why:
//
//	A generator records every random decision as a leaf in this tree. Replacing
//	a leaf with a smaller value, deleting a run of list elements or collapsing a
//	recursive node into one of its own sub-instances yields a candidate tree;
//	replaying that tree through the generator yields a candidate input. Trees
//	are persistent: Replace copies only the spine to the changed node and
//	returns the receiver itself when nothing changed, so "no-op" is a pointer
//	comparison.
//
// Identity invariant:
//
//	Ids are issued in pre-order. A node's number is below every descendant's,
//	and every descendant of an earlier sibling is below every descendant of a
//	later one. Locating the child that contains an id is therefore a linear
//	scan over the children's numbers, with no parent pointers.
//
// Shrinking order for a composite:
//
//  1. list-shaped nodes (count leaf followed by composites) first try to
//     delete runs of elements, longest runs first;
//  2. children are shrunk from the last to the first;
//  3. a node made by a generator may be replaced by a descendant made by the
//     same generator (recursion collapse);
//  4. otherwise the node is a local minimum.
//
// Integers shrink to their floor (0 or the bounded minimum), then to their
// absolute value, then by repeated halving.
//
// Errors:
//
//   - ErrNotLastChild, ErrFrozen: build-phase misuse, returned.
//   - ErrInheritorMissing, ErrInheritorShape: shrink-phase corruption, raised
//     as an *InvariantError panic and converted back to an error by the
//     shrinker driver.
//
// Concurrency:
//
//	Frozen trees are immutable and safe for concurrent reads. Builders are not
//	safe for concurrent use.
package structure
