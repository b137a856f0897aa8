package gen

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvshrink/structure"
)

// generatorKey is the identity shared by every node a generator produces.
type generatorKey struct {
	name string
}

// Generator draws values of type T from Data.
// A *Generator is a structure.Generator; its key is the pointer identity of
// the generator, so two generators with equal names are still distinct.
type Generator[T any] struct {
	key *generatorKey
	fn  func(Data) (T, error)
}

// New returns a generator running fn. Panics on nil fn.
func New[T any](name string, fn func(Data) (T, error)) *Generator[T] {
	if fn == nil {
		panic("gen: New(nil)")
	}
	return &Generator[T]{key: &generatorKey{name: name}, fn: fn}
}

// Name returns the diagnostic name.
func (g *Generator[T]) Name() string { return g.key.name }

// GeneratorKey implements structure.Generator.
func (g *Generator[T]) GeneratorKey() any { return g.key }

// Draw runs g inside a fresh sub-structure of d.
func (g *Generator[T]) Draw(d Data) (T, error) {
	sub, err := d.Sub(g)
	if err != nil {
		var zero T
		return zero, err
	}
	return g.fn(sub)
}

// Generate draws a fresh value from r and returns it with its frozen trace.
func Generate[T any](g *Generator[T], r *rand.Rand) (T, *structure.Node, error) {
	b := structure.NewBuilder(g)
	v, err := g.fn(randomData(r, b))
	if err != nil {
		var zero T
		return zero, nil, err
	}
	return v, b.Build(), nil
}

// Replay rebuilds a value and its trace from decoded replay ints. Every int
// must be consumed; leftovers mean the data was recorded by another generator.
func Replay[T any](g *Generator[T], ints []int) (T, *structure.Node, error) {
	var zero T
	b := structure.NewBuilder(g)
	data, remaining := replayData(ints, b)
	v, err := g.fn(data)
	if err != nil {
		return zero, nil, err
	}
	if n := remaining(); n > 0 {
		return zero, nil, fmt.Errorf("Replay: %d unread values: %w", n, ErrCannotReplay)
	}
	return v, b.Build(), nil
}

// FromTree rebuilds the value a (possibly shrunk) trace describes.
func FromTree[T any](g *Generator[T], root *structure.Node) (T, error) {
	return g.fn(&treeData{node: root})
}

// Rebuild replays root like FromTree and records a fresh trace holding only
// the decisions the generator consumed. Children a shrunk tree still carries
// but no longer uses (for example elements past a reduced count) are dropped,
// so the serialized trace replays through Replay.
func Rebuild[T any](g *Generator[T], root *structure.Node) (T, *structure.Node, error) {
	b := structure.NewBuilder(g)
	v, err := g.fn(&treeData{node: root, b: b})
	if err != nil {
		var zero T
		return zero, nil, err
	}
	return v, b.Build(), nil
}
