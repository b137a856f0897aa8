// Package demo holds the built-in properties the lvshrink CLI can check.
package demo

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/lvshrink/gen"
	"github.com/katalvlaran/lvshrink/property"
	"github.com/katalvlaran/lvshrink/shrinker"
	"github.com/katalvlaran/lvshrink/structure"
)

// ErrUnknownProperty indicates Lookup was given a name that is not registered.
var ErrUnknownProperty = errors.New("demo: unknown property")

// Outcome is a type-erased property.Failure.
type Outcome struct {
	Property      string
	Iteration     int
	Seed          int64
	Original      string
	OriginalTree  *structure.Node
	Minimized     string
	MinimizedTree *structure.Node
	Cause         string
	Shrink        shrinker.Result
	Token         string
}

// Property is a named check over some generated type.
type Property struct {
	Name        string
	Description string

	check   func(ctx context.Context, opts ...property.Option) (*Outcome, error)
	recheck func(token string) (string, bool, error)
}

// Check runs the property. A nil Outcome means every trial passed.
func (p Property) Check(ctx context.Context, opts ...property.Option) (*Outcome, error) {
	return p.check(ctx, opts...)
}

// Recheck replays token and reports the value and whether it still fails.
func (p Property) Recheck(token string) (string, bool, error) {
	return p.recheck(token)
}

func newProperty[T any](name, desc string, g *gen.Generator[T], prop func(T) bool, render func(T) string) Property {
	return Property{
		Name:        name,
		Description: desc,
		check: func(ctx context.Context, opts ...property.Option) (*Outcome, error) {
			f, err := property.Check(ctx, g, prop, opts...)
			if f == nil {
				return nil, err
			}
			out := &Outcome{
				Property:      name,
				Iteration:     f.Iteration,
				Seed:          f.Seed,
				Original:      render(f.Original),
				OriginalTree:  f.OriginalTree,
				Minimized:     render(f.Minimized),
				MinimizedTree: f.MinimizedTree,
				Shrink:        f.Shrink,
				Token:         f.Token,
			}
			if f.Cause != nil {
				out.Cause = fmt.Sprint(f.Cause)
			}
			return out, err
		},
		recheck: func(token string) (string, bool, error) {
			v, failing, err := property.Recheck(g, prop, token)
			if err != nil {
				return "", false, err
			}
			return render(v), failing, nil
		},
	}
}

var registry = map[string]Property{}

func register(p Property) {
	if _, dup := registry[p.Name]; dup {
		panic("demo: duplicate property " + p.Name)
	}
	registry[p.Name] = p
}

// Lookup returns the property registered under name.
func Lookup(name string) (Property, error) {
	p, ok := registry[name]
	if !ok {
		return Property{}, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	return p, nil
}

// All returns every property sorted by name.
func All() []Property {
	out := make([]Property, 0, len(registry))
	for _, p := range registry {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
