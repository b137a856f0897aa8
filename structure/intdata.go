// Package structure: integer leaves
//
// This file implements IntData, the leaf of the trace tree, and its shrink
// chain. Each proposal is checked against the leaf's distribution before a
// step is built, so the driver never sees a value the generator could not
// have drawn. Proposals move toward zero: the floor (distribution minimum or
// 0), then |v| for negatives, then repeated halving.

package structure

import (
	"io"
	"math"
	"strconv"

	"github.com/katalvlaran/lvshrink/distribution"
	"github.com/katalvlaran/lvshrink/replay"
)

// IntData is a frozen leaf: one integer decision and its distribution.
type IntData struct {
	id    *NodeID
	value int
	dist  distribution.Int
}

func (*IntData) sealed() {}

// ID returns the leaf identity.
func (d *IntData) ID() *NodeID { return d.id }

// Value returns the recorded integer.
func (d *IntData) Value() int { return d.value }

// Distribution returns the oracle the value was drawn from.
func (d *IntData) Distribution() distribution.Int { return d.dist }

// withValue returns a leaf with the same id and distribution.
func (d *IntData) withValue(v int) *IntData {
	return &IntData{id: d.id, value: v, dist: d.dist}
}

// Shrink proposes the floor first, then the absolute value, then halving.
// Zero has no step.
func (d *IntData) Shrink() Step {
	// 1) Zero is the simplest value any leaf can hold
	if d.value == 0 {
		return nil
	}
	// 2) The floor is 0 unless the distribution starts above it
	floor := 0
	if m, ok := distribution.MinOf(d.dist); ok && m > floor {
		floor = m
	}
	// 3) An accepted floor is final; a rejected one falls through to negation
	return d.tryInt(floor, nil, d.tryNegation)
}

// tryNegation proposes |v| for negative values, then halves whichever value
// is current.
func (d *IntData) tryNegation() Step {
	// -MinInt overflows back to MinInt
	if d.value < 0 && d.value != math.MinInt {
		abs := -d.value
		return d.tryInt(abs,
			func() Step { return d.halve(abs) },
			func() Step { return d.halve(d.value) },
		)
	}
	return d.halve(d.value)
}

// halve proposes m/2 and keeps halving while proposals are accepted.
// A rejected proposal ends the chain.
func (d *IntData) halve(m int) Step {
	if m == 0 {
		return nil
	}
	half := m / 2 // truncates toward zero for both signs
	return d.tryInt(half, func() Step { return d.halve(half) }, nil)
}

// tryInt builds a step proposing v. Values that are invalid or equal to the
// current one are skipped: the failure continuation is taken immediately.
func (d *IntData) tryInt(v int, success, failure func() Step) Step {
	// An equal value would be a no-op candidate the driver has to skip anyway
	if v == d.value || !d.dist.IsValidValue(v) {
		if failure == nil {
			return nil
		}
		return failure()
	}
	var onSuccess func(*Node) Step
	if success != nil {
		onSuccess = func(*Node) Step { return success() }
	}
	return NewReplaceStep(d.id, d.withValue(v), onSuccess, failure)
}

// Replace returns replacement when id is this leaf's, otherwise the leaf.
func (d *IntData) Replace(id *NodeID, replacement Element) Element {
	if id == d.id {
		return replacement
	}
	return d
}

// FindChildByID returns the leaf when id matches, else nil.
func (d *IntData) FindChildByID(id *NodeID) Element {
	if id == d.id {
		return d
	}
	return nil
}

// Serialize writes the value in the replay varint encoding.
func (d *IntData) Serialize(w io.ByteWriter) error {
	return replay.WriteInt(w, d.value)
}

// Equal reports whether other is a leaf with the same value.
func (d *IntData) Equal(other Element) bool {
	o, ok := other.(*IntData)
	return ok && o.value == d.value
}

func (d *IntData) String() string {
	return strconv.Itoa(d.value)
}
