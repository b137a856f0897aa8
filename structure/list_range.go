// Package structure: list-range deletion
//
// This file implements the first shrinking phase of a list-shaped node:
// deleting runs of consecutive elements while decrementing the count leaf so
// the generator still reads a consistent list on replay. Run lengths halve
// from the element count down to 1; positions walk from the tail to the head.

package structure

import "strconv"

// listRangeStep removes children[start : start+length] from a list-shaped
// node and decrements its count leaf by length.
//
// Search order: the longest run first, halving the run length each round
// (k, k/2, …, 1); within one length, start offsets move from the tail toward
// the head. After single-element removal is exhausted the node falls back to
// shrinking its elements one by one.
type listRangeStep struct {
	node   *Node
	length int
	start  int
}

// listRangeFrom returns the removal at (length, start) on n, or the next one
// in search order when that position does not exist.
func listRangeFrom(n *Node, length, start int) Step {
	size := len(n.children)
	// 1) A run can cover at most every element (index 0 is the count)
	if length > size-1 {
		length = size - 1
	}
	for length > 0 {
		// 2) Clamp the run so it ends at or before the last child
		if start+length > size {
			start = size - length
		}
		// 3) A valid run never touches the count leaf
		if start >= 1 {
			return &listRangeStep{node: n, length: length, start: start}
		}
		// 4) No room at this length: halve and restart from the tail
		length /= 2
		start = size - length
	}
	// 5) Deletion exhausted: shrink the elements themselves
	return n.shrinkChild(size - 1)
}

// Apply builds the shortened node. It returns nil when the count leaf's
// distribution rejects the new count.
func (s *listRangeStep) Apply(root *Node) *Node {
	n := s.node
	// 1) The count must stay valid for its distribution (e.g. a minimum length)
	count := n.children[0].(*IntData)
	newCount := count.value - s.length
	if !count.dist.IsValidValue(newCount) {
		return nil
	}
	// 2) count', elements before the run, elements after the run
	children := make([]Element, 0, len(n.children)-s.length)
	children = append(children, count.withValue(newCount))
	children = append(children, n.children[1:s.start]...)
	children = append(children, n.children[s.start+s.length:]...)
	// 3) Same id, so later steps can find the shortened list again
	out, ok := root.Replace(n.id, newNode(n.id, children, n.prohibited)).(*Node)
	if !ok {
		return nil
	}
	return out
}

// OnSuccess continues with the same length just before the removed run.
func (s *listRangeStep) OnSuccess(smaller *Node) Step {
	inheritor, ok := smaller.FindChildByID(s.node.id).(*Node)
	if !ok {
		invariantf(ErrInheritorMissing, "list %s", s.node.id)
	}
	// Removing every element leaves only the count: no longer a list
	if !inheritor.list {
		return inheritor.shrinkChild(len(inheritor.children) - 1)
	}
	// Elements after the run were already tried at this length
	next := s.start - s.length
	if next < 1 {
		next = 1
	}
	return listRangeFrom(inheritor, s.length, next)
}

// OnFailure moves the run one position toward the head.
func (s *listRangeStep) OnFailure() Step {
	if s.start > 1 {
		return &listRangeStep{node: s.node, length: s.length, start: s.start - 1}
	}
	length := s.length / 2
	return listRangeFrom(s.node, length, len(s.node.children)-length)
}

func (s *listRangeStep) Key() StepKey {
	return StepKey{Target: s.node.id, Change: s.String()}
}

func (s *listRangeStep) String() string {
	return "remove" + s.node.id.String() + "[" + strconv.Itoa(s.start) + ":" + strconv.Itoa(s.start+s.length) + "]"
}
