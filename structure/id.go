package structure

import (
	"strconv"
	"sync/atomic"
)

// Generator identifies the generation routine that produced a composite node.
// Nodes whose generators return equal keys are considered self-similar by
// recursion collapse. GeneratorKey must return a comparable value.
type Generator interface {
	GeneratorKey() any
}

// sequence hands out id numbers for one tree.
type sequence struct {
	last atomic.Uint64
}

// NodeID is the identity of one structural element. Two ids are the same only
// if they are the same pointer; Number orders them.
type NodeID struct {
	number uint64
	gen    Generator
	seq    *sequence
}

// NewRootID starts a fresh id sequence and returns its first id (number 0).
// g may be nil for synthetic roots.
func NewRootID(g Generator) *NodeID {
	return &NodeID{number: 0, gen: g, seq: &sequence{}}
}

// ChildID issues an id ordered after every id issued so far in this sequence.
// Complexity: O(1).
func (id *NodeID) ChildID(g Generator) *NodeID {
	return &NodeID{number: id.seq.last.Add(1), gen: g, seq: id.seq}
}

// Number returns the creation sequence number.
func (id *NodeID) Number() uint64 { return id.number }

// Generator returns the generator that produced the node, or nil.
func (id *NodeID) Generator() Generator { return id.gen }

func (id *NodeID) String() string {
	return "#" + strconv.FormatUint(id.number, 10)
}

// sameGenerator reports whether g produced an id with the given key.
func sameGenerator(g Generator, key any) bool {
	return g != nil && g.GeneratorKey() == key
}
