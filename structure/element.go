package structure

import (
	"bytes"
	"io"
)

// Element is a frozen node of the trace tree: *Node or *IntData.
// The set of variants is closed; callers may type-switch exhaustively.
type Element interface {
	// ID returns the element's identity.
	ID() *NodeID
	// Shrink returns the first step of this element's search, or nil when the
	// element is a local minimum.
	Shrink() Step
	// Replace returns a tree where the element with the given id is replaced.
	// The receiver itself is returned when nothing changed.
	Replace(id *NodeID, replacement Element) Element
	// FindChildByID returns the element with the given id, or nil.
	FindChildByID(id *NodeID) Element
	// Serialize writes the pre-order leaf encoding.
	Serialize(w io.ByteWriter) error
	// Equal compares by value, ignoring identities.
	Equal(other Element) bool
	// String renders the value: (a, b) for composites, [a, b] for lists.
	String() string

	sealed()
}

// Serialize returns the replay encoding of e: its leaf values in pre-order,
// with no framing for composites.
func Serialize(e Element) []byte {
	var buf bytes.Buffer
	// bytes.Buffer.WriteByte never fails.
	_ = e.Serialize(&buf)
	return buf.Bytes()
}
