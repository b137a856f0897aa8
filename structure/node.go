// Package structure: composite trace nodes
//
// This file implements Node, the frozen composite of the trace tree, and the
// node-level half of shrinking: list-range deletion (list_range.go), child
// shrinking from the last child toward the first, and recursion collapse,
// where a node is replaced by a descendant built by its own generator.
// Every edit is persistent: Replace copies the spine from the root to the
// target and shares all other subtrees, so a rejected candidate costs
// O(depth · width) and leaves the accepted tree untouched.

package structure

import (
	"io"
	"strings"
)

// Node is a frozen composite element: an ordered sequence of children.
// A Node is never mutated after construction; every change goes through
// Replace, which shares all untouched subtrees with the original.
type Node struct {
	id         *NodeID
	children   []Element
	prohibited bool // sticky across Replace copies
	list       bool // cached list shape
}

// newNode freezes children under id. The slice is owned by the node.
func newNode(id *NodeID, children []Element, prohibited bool) *Node {
	n := &Node{id: id, children: children, prohibited: prohibited}
	n.list = detectList(children)
	return n
}

// detectList reports the list shape: at least two children, a leading count
// leaf with value >= number of elements, and composite elements only.
func detectList(children []Element) bool {
	// 1) A list needs its count leaf plus at least one element
	if len(children) < 2 {
		return false
	}
	// 2) The count may exceed the elements (a filter can discard some) but
	//    never fall short of them
	count, ok := children[0].(*IntData)
	if !ok || count.value < len(children)-1 {
		return false
	}
	// 3) Each element is recorded as its own sub-structure
	for _, c := range children[1:] {
		if _, ok := c.(*Node); !ok {
			return false
		}
	}
	return true
}

func (*Node) sealed() {}

// ID returns the node identity.
func (n *Node) ID() *NodeID { return n.id }

// Len returns the number of children.
func (n *Node) Len() int { return len(n.children) }

// Child returns the i-th child.
func (n *Node) Child(i int) Element { return n.children[i] }

// Children returns a copy of the child slice.
func (n *Node) Children() []Element {
	out := make([]Element, len(n.children))
	copy(out, n.children)
	return out
}

// IsList reports whether the node is list-shaped.
func (n *Node) IsList() bool { return n.list }

// ShrinkProhibited reports whether the node's own shrinking is disabled.
func (n *Node) ShrinkProhibited() bool { return n.prohibited }

// WithShrinkProhibited returns a copy with shrinking disabled; the copy keeps
// the same id and shares all children.
func (n *Node) WithShrinkProhibited() *Node {
	if n.prohibited {
		return n
	}
	return newNode(n.id, n.children, true)
}

// Shrink returns the node's first shrink step, or nil if the node is
// prohibited or already a local minimum.
// Order: list ranges (longest first), then children from last to first,
// then recursion collapse.
func (n *Node) Shrink() Step {
	// 1) Prohibition blocks this node's own steps only; ancestors may still
	//    replace it wholesale
	if n.prohibited {
		return nil
	}
	// 2) Lists try deleting all elements at once before anything smaller
	if n.list {
		k := len(n.children) - 1
		return listRangeFrom(n, k, 1)
	}
	// 3) Plain composites go straight to their children
	return n.shrinkChild(len(n.children) - 1)
}

// shrinkChild scans children from index down to the first shrinkable one,
// then falls through to recursion collapse.
func (n *Node) shrinkChild(index int) Step {
	// The count leaf of a list is only changed by list-range deletion;
	// shrinking it directly would desynchronize count and elements.
	minIndex := 0
	if n.list {
		minIndex = 1
	}
	// Later children depend on earlier draws, so they are shrunk first.
	for ; index >= minIndex; index-- {
		if s := n.children[index].Shrink(); s != nil {
			return n.wrapChild(index, s)
		}
	}
	return n.shrinkRecursion()
}

// wrapChild lifts a child's step to this node; a nil step resumes the scan
// at the next lower index.
func (n *Node) wrapChild(index int, s Step) Step {
	if s == nil {
		return n.shrinkChild(index - 1)
	}
	return &childStep{parent: n, index: index, inner: s, oldChild: n.children[index].ID()}
}

// shrinkRecursion proposes replacing n by each descendant made by n's own
// generator, in depth-first order.
func (n *Node) shrinkRecursion() Step {
	// Anonymous sub-structures have no generator to match against
	g := n.id.gen
	if g == nil {
		return nil
	}
	var candidates []*Node
	n.collectSameGenerator(g.GeneratorKey(), &candidates)
	return n.tryReplacing(candidates, 0)
}

// collectSameGenerator appends matching descendants; a match is not searched
// further, so the first match along each path wins.
func (n *Node) collectSameGenerator(key any, out *[]*Node) {
	for _, c := range n.children {
		sub, ok := c.(*Node)
		if !ok {
			continue
		}
		if sameGenerator(sub.id.gen, key) {
			*out = append(*out, sub)
			continue
		}
		sub.collectSameGenerator(key, out)
	}
}

// tryReplacing proposes candidates[i] in place of n. After a success the
// replacement sits under n's id, so the search continues inside it.
func (n *Node) tryReplacing(candidates []*Node, i int) Step {
	if i >= len(candidates) {
		return nil // every candidate rejected
	}
	replacement := candidates[i]
	return NewReplaceStep(n.id, replacement,
		func(*Node) Step { return replacement.Shrink() },
		func() Step { return n.tryReplacing(candidates, i+1) },
	)
}

// Replace returns the tree with the element identified by id replaced.
// Only the spine from n to the target is copied; the receiver is returned
// when id is absent or the replacement leaves the subtree unchanged.
// Complexity: O(depth · width).
func (n *Node) Replace(id *NodeID, replacement Element) Element {
	// 1) The target is this node itself
	if id == n.id {
		return replacement
	}
	// 2) Locate the only child whose subtree can hold id
	i := n.indexOfChildContaining(id)
	if i < 0 {
		return n // id precedes every child: not in this subtree
	}
	// 3) Recurse; identical result means nothing below changed
	oldChild := n.children[i]
	newChild := oldChild.Replace(id, replacement)
	if newChild == oldChild {
		return n
	}
	// 4) Copy only this level; siblings are shared with the original
	children := make([]Element, len(n.children))
	copy(children, n.children)
	children[i] = newChild
	return newNode(n.id, children, n.prohibited)
}

// FindChildByID returns the element with the given id inside n, or nil.
func (n *Node) FindChildByID(id *NodeID) Element {
	if id == n.id {
		return n
	}
	i := n.indexOfChildContaining(id)
	if i < 0 {
		return nil
	}
	return n.children[i].FindChildByID(id)
}

// indexOfChildContaining returns the last child whose number is <= id's,
// or -1. Relies on pre-order numbering.
// A replaced subtree keeps its own ids, which stay inside the number range of
// the subtree it replaced, so the scan stays valid after any edit.
func (n *Node) indexOfChildContaining(id *NodeID) int {
	i := 0
	for i < len(n.children) && n.children[i].ID().number <= id.number {
		i++
	}
	return i - 1
}

// Serialize writes the children's encodings; composites add no bytes.
func (n *Node) Serialize(w io.ByteWriter) error {
	for _, c := range n.children {
		if err := c.Serialize(w); err != nil {
			return err
		}
	}
	return nil
}

// Equal reports whether other is a composite with equal children.
func (n *Node) Equal(other Element) bool {
	m, ok := other.(*Node)
	if !ok || len(m.children) != len(n.children) {
		return false
	}
	// Shared subtrees are common after Replace; skip the walk for them
	if m == n {
		return true
	}
	for i, c := range n.children {
		if !c.Equal(m.children[i]) {
			return false
		}
	}
	return true
}

func (n *Node) String() string {
	var sb strings.Builder
	n.render(&sb)
	return sb.String()
}

func (n *Node) render(sb *strings.Builder) {
	open, closing := byte('('), byte(')')
	if n.list {
		open, closing = '[', ']'
	}
	sb.WriteByte(open)
	for i, c := range n.children {
		if i > 0 {
			sb.WriteString(", ")
		}
		switch e := c.(type) {
		case *Node:
			e.render(sb)
		case *IntData:
			sb.WriteString(e.String())
		}
	}
	sb.WriteByte(closing)
}
