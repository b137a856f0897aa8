package distribution

import (
	"fmt"
	"math"
	"math/rand"
)

// Int is a validity oracle over int values.
type Int interface {
	// IsValidValue reports whether v may appear where this distribution was drawn.
	IsValidValue(v int) bool
	// Generate draws a valid value from r.
	Generate(r *rand.Rand) int
}

// Bounded is an Int whose valid values lie in the inclusive range [Min, Max].
type Bounded interface {
	Int
	Min() int
	Max() int
}

// edgeBias is the 1-in-N chance that Range draws one of its bounds directly.
const edgeBias = 10

// rangeDist is the inclusive [min, max] distribution.
type rangeDist struct {
	min, max int
}

// Range returns a Bounded distribution over [min, max].
// Panics if min > max.
// Complexity: O(1).
func Range(min, max int) Bounded {
	if min > max {
		panic(fmt.Sprintf("distribution: Range(min=%d > max=%d)", min, max))
	}
	return rangeDist{min: min, max: max}
}

// Natural returns Range(0, max).
func Natural(max int) Bounded {
	return Range(0, max)
}

func (d rangeDist) Min() int { return d.min }
func (d rangeDist) Max() int { return d.max }

func (d rangeDist) IsValidValue(v int) bool {
	return v >= d.min && v <= d.max
}

// Generate draws uniformly, hitting either bound directly one time in edgeBias
// so that boundary values show up in short runs.
func (d rangeDist) Generate(r *rand.Rand) int {
	if d.min == d.max {
		return d.min
	}
	switch r.Intn(edgeBias) {
	case 0:
		return d.min
	case 1:
		return d.max
	}
	span := uint64(d.max) - uint64(d.min)
	if span == math.MaxUint64 {
		return int(r.Uint64())
	}
	return int(uint64(d.min) + r.Uint64()%(span+1))
}

func (d rangeDist) String() string {
	return fmt.Sprintf("[%d..%d]", d.min, d.max)
}

// unbounded accepts every int.
type unbounded struct{}

// Unbounded returns a distribution accepting every int. Generation is biased
// toward small magnitudes; full-width values appear rarely.
func Unbounded() Int {
	return unbounded{}
}

func (unbounded) IsValidValue(int) bool { return true }

func (unbounded) Generate(r *rand.Rand) int {
	switch r.Intn(edgeBias) {
	case 0:
		return int(r.Uint64())
	case 1:
		return r.Intn(1<<16) - 1<<15
	}
	return r.Intn(201) - 100
}

func (unbounded) String() string { return "int" }

// filtered narrows an inner distribution with a predicate.
type filtered struct {
	inner Int
	pred  func(int) bool
}

// maxFilterDraws caps rejection sampling in filtered.Generate.
const maxFilterDraws = 1000

// boundedFiltered keeps Min/Max visible when the inner distribution is bounded.
type boundedFiltered struct {
	filtered
	bounds Bounded
}

// Filter returns a distribution valid where both d and pred accept the value.
// If d is Bounded the result is Bounded with the same Min and Max.
// Panics on a nil distribution or predicate.
func Filter(d Int, pred func(int) bool) Int {
	if d == nil || pred == nil {
		panic("distribution: Filter(nil)")
	}
	f := filtered{inner: d, pred: pred}
	if b, ok := d.(Bounded); ok {
		return boundedFiltered{filtered: f, bounds: b}
	}
	return f
}

func (f filtered) IsValidValue(v int) bool {
	return f.inner.IsValidValue(v) && f.pred(v)
}

// Generate rejection-samples the inner distribution. It panics when no valid
// value turns up after maxFilterDraws draws, which means the predicate is
// practically unsatisfiable for the inner distribution.
func (f filtered) Generate(r *rand.Rand) int {
	for i := 0; i < maxFilterDraws; i++ {
		if v := f.inner.Generate(r); f.pred(v) {
			return v
		}
	}
	panic("distribution: Filter predicate rejected every draw")
}

func (f boundedFiltered) Min() int { return f.bounds.Min() }
func (f boundedFiltered) Max() int { return f.bounds.Max() }

// MinOf returns the minimum of d when it is Bounded.
func MinOf(d Int) (int, bool) {
	if b, ok := d.(Bounded); ok {
		return b.Min(), true
	}
	return 0, false
}
