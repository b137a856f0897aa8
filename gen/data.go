// Package gen: decision streams
//
// This file implements the three Data sources a generator can run against:
// fresh randomness, a flat stream of replayed ints, and a frozen trace tree.
// All three record into a structure.Builder when one is attached, so the
// same generator code produces, replays and normalizes traces.

package gen

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvshrink/distribution"
	"github.com/katalvlaran/lvshrink/structure"
)

var (
	// ErrCannotReplay indicates recorded decisions do not fit the generator.
	ErrCannotReplay = errors.New("gen: cannot replay value")

	// ErrFilterExhausted indicates Filter rejected every attempt.
	ErrFilterExhausted = errors.New("gen: filter rejected every attempt")
)

// Data is the decision stream a generator draws from.
type Data interface {
	// DrawInt returns the next integer decision for d.
	DrawInt(d distribution.Int) (int, error)
	// Sub opens a nested structure produced by g.
	Sub(g structure.Generator) (Data, error)
	// Discard drops sub, which must be the most recently opened structure.
	// Replaying data cannot discard and returns ErrCannotReplay.
	Discard(sub Data) error
}

// streamData draws from a flat source and records into a builder.
type streamData struct {
	next func(d distribution.Int) (int, error)
	b    *structure.Builder
}

func (s *streamData) DrawInt(d distribution.Int) (int, error) {
	v, err := s.next(d)
	if err != nil {
		return 0, err
	}
	if err := s.b.AddInt(v, d); err != nil {
		return 0, err
	}
	return v, nil
}

func (s *streamData) Sub(g structure.Generator) (Data, error) {
	child, err := s.b.SubStructure(g)
	if err != nil {
		return nil, err
	}
	return &streamData{next: s.next, b: child}, nil
}

func (s *streamData) Discard(sub Data) error {
	child, ok := sub.(*streamData)
	if !ok {
		return fmt.Errorf("Discard: %w", structure.ErrNotLastChild)
	}
	return s.b.RemoveLastChild(child.b)
}

// replayStream is a streamData that refuses to discard.
type replayStream struct {
	streamData
}

func (s *replayStream) Sub(g structure.Generator) (Data, error) {
	child, err := s.b.SubStructure(g)
	if err != nil {
		return nil, err
	}
	return &replayStream{streamData{next: s.next, b: child}}, nil
}

func (s *replayStream) Discard(Data) error {
	return fmt.Errorf("Discard during replay: %w", ErrCannotReplay)
}

// randomData returns Data drawing fresh values from r into b.
func randomData(r *rand.Rand, b *structure.Builder) Data {
	return &streamData{
		next: func(d distribution.Int) (int, error) { return d.Generate(r), nil },
		b:    b,
	}
}

// replayData returns Data consuming ints in order and recording into b,
// plus a func reporting how many ints are still unread.
func replayData(ints []int, b *structure.Builder) (Data, func() int) {
	pos := 0
	remaining := func() int { return len(ints) - pos }
	return &replayStream{streamData{
		next: func(d distribution.Int) (int, error) {
			if pos >= len(ints) {
				return 0, fmt.Errorf("value %d: input exhausted: %w", pos, ErrCannotReplay)
			}
			v := ints[pos]
			if !d.IsValidValue(v) {
				return 0, fmt.Errorf("value %d (%d) invalid: %w", pos, v, ErrCannotReplay)
			}
			pos++
			return v, nil
		},
		b: b,
	}}, remaining
}

// treeData walks the children of a frozen node in order. When b is set the
// consumed decisions are recorded into it. Unread trailing children are
// allowed: a shrunk count can leave elements the generator no longer reads.
type treeData struct {
	node *structure.Node
	pos  int
	b    *structure.Builder
}

func (t *treeData) next() (structure.Element, error) {
	if t.pos >= t.node.Len() {
		return nil, fmt.Errorf("node %s: children exhausted: %w", t.node.ID(), ErrCannotReplay)
	}
	e := t.node.Child(t.pos)
	t.pos++
	return e, nil
}

func (t *treeData) DrawInt(d distribution.Int) (int, error) {
	e, err := t.next()
	if err != nil {
		return 0, err
	}
	leaf, ok := e.(*structure.IntData)
	if !ok {
		return 0, fmt.Errorf("%s: want int, found structure: %w", e.ID(), ErrCannotReplay)
	}
	if !d.IsValidValue(leaf.Value()) {
		return 0, fmt.Errorf("%s: value %d invalid: %w", e.ID(), leaf.Value(), ErrCannotReplay)
	}
	if t.b != nil {
		if err := t.b.AddInt(leaf.Value(), d); err != nil {
			return 0, err
		}
	}
	return leaf.Value(), nil
}

func (t *treeData) Sub(g structure.Generator) (Data, error) {
	e, err := t.next()
	if err != nil {
		return nil, err
	}
	n, ok := e.(*structure.Node)
	if !ok {
		return nil, fmt.Errorf("%s: want structure, found int: %w", e.ID(), ErrCannotReplay)
	}
	if t.b == nil {
		return &treeData{node: n}, nil
	}
	child, err := t.b.SubStructure(g)
	if err != nil {
		return nil, err
	}
	return &treeData{node: n, b: child}, nil
}

func (t *treeData) Discard(Data) error {
	return fmt.Errorf("Discard during replay: %w", ErrCannotReplay)
}
