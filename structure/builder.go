package structure

import (
	"fmt"

	"github.com/katalvlaran/lvshrink/distribution"
)

// Builder is the append-only build phase of a composite node. Generators
// append leaves and sub-structures while they run; Build freezes the result.
// A Builder is not safe for concurrent use.
type Builder struct {
	id         *NodeID
	entries    []builderEntry
	prohibited bool
	frozen     *Node
}

// builderEntry holds exactly one of leaf or sub.
type builderEntry struct {
	leaf *IntData
	sub  *Builder
}

// NewBuilder starts a new tree whose root was produced by g (may be nil).
func NewBuilder(g Generator) *Builder {
	return &Builder{id: NewRootID(g)}
}

// ID returns the identity of the node being built.
func (b *Builder) ID() *NodeID { return b.id }

// Len returns the number of children appended so far.
func (b *Builder) Len() int { return len(b.entries) }

// AddInt appends an integer leaf.
func (b *Builder) AddInt(value int, d distribution.Int) error {
	if b.frozen != nil {
		return fmt.Errorf("AddInt: %w", ErrFrozen)
	}
	b.entries = append(b.entries, builderEntry{leaf: &IntData{id: b.id.ChildID(nil), value: value, dist: d}})
	return nil
}

// SubStructure appends and returns a child composite produced by g.
func (b *Builder) SubStructure(g Generator) (*Builder, error) {
	if b.frozen != nil {
		return nil, fmt.Errorf("SubStructure: %w", ErrFrozen)
	}
	child := &Builder{id: b.id.ChildID(g)}
	b.entries = append(b.entries, builderEntry{sub: child})
	return child, nil
}

// RemoveLastChild drops child, which must be the most recently appended
// entry and a sub-structure. Ids already issued inside it are not reused.
func (b *Builder) RemoveLastChild(child *Builder) error {
	if b.frozen != nil {
		return fmt.Errorf("RemoveLastChild: %w", ErrFrozen)
	}
	// Leaf entries carry a nil sub, so nil would match them.
	if child == nil {
		return fmt.Errorf("RemoveLastChild(nil): %w", ErrNotLastChild)
	}
	last := len(b.entries) - 1
	if last < 0 || b.entries[last].sub != child {
		return fmt.Errorf("RemoveLastChild(%s): %w", child.id, ErrNotLastChild)
	}
	b.entries[last] = builderEntry{}
	b.entries = b.entries[:last]
	return nil
}

// ProhibitShrink excludes the node from minimization. The flag survives every
// persistent copy made by Replace.
func (b *Builder) ProhibitShrink() {
	b.prohibited = true
}

// Build freezes the subtree and returns it. Calling Build again returns the
// same *Node; any later mutation fails with ErrFrozen.
// Complexity: O(size of subtree).
func (b *Builder) Build() *Node {
	if b.frozen != nil {
		return b.frozen
	}
	children := make([]Element, len(b.entries))
	for i, e := range b.entries {
		if e.leaf != nil {
			children[i] = e.leaf
		} else {
			children[i] = e.sub.Build()
		}
	}
	b.frozen = newNode(b.id, children, b.prohibited)
	b.entries = nil
	return b.frozen
}
