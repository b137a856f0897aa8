// Package gen: combinators
//
// Each combinator opens its own sub-structure for every nested draw, so the
// trace mirrors the value's shape and the shrinker can delete or collapse
// whole parts of it.

package gen

import (
	"fmt"

	"github.com/katalvlaran/lvshrink/distribution"
)

// maxFilterAttempts bounds the retries of Filter on fresh data.
const maxFilterAttempts = 100

// Int draws one integer from d.
func Int(d distribution.Int) *Generator[int] {
	if d == nil {
		panic("gen: Int(nil)")
	}
	return New("int", func(data Data) (int, error) {
		return data.DrawInt(d)
	})
}

// Bool draws false or true; false is the simpler value.
func Bool() *Generator[bool] {
	d := distribution.Range(0, 1)
	return New("bool", func(data Data) (bool, error) {
		v, err := data.DrawInt(d)
		return v == 1, err
	})
}

// Const always yields v and records no decisions.
func Const[T any](v T) *Generator[T] {
	return New("const", func(Data) (T, error) { return v, nil })
}

// Map transforms the values of g with f. The mapped generator records into
// the same structure as g.
func Map[A, B any](g *Generator[A], f func(A) B) *Generator[B] {
	if f == nil {
		panic("gen: Map(nil)")
	}
	return New(g.Name(), func(data Data) (B, error) {
		a, err := g.fn(data)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a), nil
	})
}

// Zip draws a then b, each in its own sub-structure, and combines them.
func Zip[A, B, T any](a *Generator[A], b *Generator[B], f func(A, B) T) *Generator[T] {
	if f == nil {
		panic("gen: Zip(nil)")
	}
	return New("zip", func(data Data) (T, error) {
		var zero T
		va, err := a.Draw(data)
		if err != nil {
			return zero, err
		}
		vb, err := b.Draw(data)
		if err != nil {
			return zero, err
		}
		return f(va, vb), nil
	})
}

// List draws a length from length and then that many elements.
// length must not produce negative values.
func List[T any](elem *Generator[T], length distribution.Bounded) *Generator[[]T] {
	if length == nil {
		panic("gen: List(nil length)")
	}
	if length.Min() < 0 {
		panic(fmt.Sprintf("gen: List length min %d < 0", length.Min()))
	}
	return New("list", func(data Data) ([]T, error) {
		n, err := data.DrawInt(length)
		if err != nil {
			return nil, err
		}
		out := make([]T, 0, n)
		for i := 0; i < n; i++ {
			v, err := elem.Draw(data)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	})
}

// OneOf picks one of gs; earlier alternatives are simpler.
func OneOf[T any](gs ...*Generator[T]) *Generator[T] {
	if len(gs) == 0 {
		panic("gen: OneOf()")
	}
	choice := distribution.Range(0, len(gs)-1)
	return New("oneOf", func(data Data) (T, error) {
		i, err := data.DrawInt(choice)
		if err != nil {
			var zero T
			return zero, err
		}
		return gs[i].Draw(data)
	})
}

// Filter draws from g until pred accepts. Rejected attempts are discarded
// from the trace; replaying a rejected value fails with ErrCannotReplay.
func Filter[T any](g *Generator[T], pred func(T) bool) *Generator[T] {
	if pred == nil {
		panic("gen: Filter(nil)")
	}
	return New(g.Name()+"?", func(data Data) (T, error) {
		var zero T
		for attempt := 0; attempt < maxFilterAttempts; attempt++ {
			sub, err := data.Sub(g)
			if err != nil {
				return zero, err
			}
			v, err := g.fn(sub)
			if err != nil {
				return zero, err
			}
			if pred(v) {
				return v, nil
			}
			if err := data.Discard(sub); err != nil {
				return zero, err
			}
		}
		return zero, fmt.Errorf("%s after %d attempts: %w", g.Name(), maxFilterAttempts, ErrFilterExhausted)
	})
}

// Recursive builds a self-referencing generator. body receives the generator
// being defined; every nested draw of it is tagged with the same identity.
func Recursive[T any](name string, body func(self *Generator[T]) *Generator[T]) *Generator[T] {
	if body == nil {
		panic("gen: Recursive(nil)")
	}
	self := &Generator[T]{key: &generatorKey{name: name}}
	inner := body(self)
	if inner == nil {
		panic("gen: Recursive body returned nil")
	}
	self.fn = inner.fn
	return self
}
