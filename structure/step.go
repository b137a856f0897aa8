// Package structure: shrink steps
//
// This file defines the Step protocol and its two generic implementations.
// A step is one candidate edit plus the continuations to follow after the
// driver's verdict; continuations are built only when asked for, so a search
// that stops early never materializes the rest of the chain.

package structure

// Step is a single trial mutation plus the lazily computed continuations a
// driver follows after evaluating it.
//
// Driver protocol:
//
//	step := root.Shrink()
//	for step != nil {
//	    candidate := step.Apply(root)
//	    if candidate != nil && stillFails(candidate) {
//	        root, step = candidate, step.OnSuccess(candidate)
//	    } else {
//	        step = step.OnFailure()
//	    }
//	}
//
// Continuations are not evaluated until called; the search space they
// describe (repeated halving, nested collapse) is never built up front.
type Step interface {
	// Apply returns the candidate root, or nil when the step does not apply.
	Apply(root *Node) *Node
	// OnSuccess returns the next step after the candidate was accepted.
	OnSuccess(smaller *Node) Step
	// OnFailure returns the alternative after the candidate was rejected.
	OnFailure() Step
	// Key identifies the trial for duplicate suppression.
	Key() StepKey
}

// StepKey identifies a trial by value. Target is the replaced node, Change a
// canonical rendering of the mutation and Depth the number of enclosing
// child wrappers, so a wrapped step's key is the singleton nesting of its
// inner key.
type StepKey struct {
	Target *NodeID
	Change string
	Depth  int
}

// replaceStep swaps one element for a replacement.
type replaceStep struct {
	target      *NodeID
	replacement Element
	onSuccess   func(*Node) Step
	onFailure   func() Step
}

// NewReplaceStep returns a step replacing target with replacement. Either
// continuation may be nil, meaning "no further step".
func NewReplaceStep(target *NodeID, replacement Element, onSuccess func(*Node) Step, onFailure func() Step) Step {
	return &replaceStep{target: target, replacement: replacement, onSuccess: onSuccess, onFailure: onFailure}
}

func (s *replaceStep) Apply(root *Node) *Node {
	out, ok := root.Replace(s.target, s.replacement).(*Node)
	if !ok {
		return nil
	}
	return out
}

func (s *replaceStep) OnSuccess(smaller *Node) Step {
	if s.onSuccess == nil {
		return nil
	}
	return s.onSuccess(smaller)
}

func (s *replaceStep) OnFailure() Step {
	if s.onFailure == nil {
		return nil
	}
	return s.onFailure()
}

func (s *replaceStep) Key() StepKey {
	return StepKey{Target: s.target, Change: s.replacement.String()}
}

func (s *replaceStep) String() string {
	return s.target.String() + "→" + s.replacement.String()
}

// childStep lifts a child's step to its parent at a fixed index.
type childStep struct {
	parent   *Node
	index    int
	inner    Step
	oldChild *NodeID
}

// Apply delegates: the mutation is local to the child's subtree.
func (s *childStep) Apply(root *Node) *Node {
	return s.inner.Apply(root)
}

// OnSuccess re-locates the parent in the smaller tree. If the child at index
// was itself replaced (recursion collapse), the parent restarts its search.
func (s *childStep) OnSuccess(smaller *Node) Step {
	// 1) The parent keeps its id across every edit below it
	found := smaller.FindChildByID(s.parent.id)
	inheritor, ok := found.(*Node)
	if !ok {
		invariantf(ErrInheritorMissing, "node %s", s.parent.id)
	}
	// 2) Child edits never add or remove siblings, so index stays meaningful
	if len(inheritor.children) != len(s.parent.children) {
		invariantf(ErrInheritorShape, "node %s: %d children, was %d",
			s.parent.id, len(inheritor.children), len(s.parent.children))
	}
	// 3) A collapsed child has a new id; the old continuation no longer applies
	if inheritor.children[s.index].ID() != s.oldChild {
		return inheritor.Shrink()
	}
	// 4) Continue the child's chain on the inheritor
	return inheritor.wrapChild(s.index, s.inner.OnSuccess(smaller))
}

// OnFailure follows the child's own alternative, then lower indices.
func (s *childStep) OnFailure() Step {
	return s.parent.wrapChild(s.index, s.inner.OnFailure())
}

func (s *childStep) Key() StepKey {
	k := s.inner.Key()
	k.Depth++
	return k
}

func (s *childStep) String() string {
	return "-" + describe(s.inner)
}

func describe(s Step) string {
	if st, ok := s.(interface{ String() string }); ok {
		return st.String()
	}
	return "step"
}
