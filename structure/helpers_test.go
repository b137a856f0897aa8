package structure_test

import (
	"pgregory.net/rapid"

	"github.com/katalvlaran/lvshrink/distribution"
	"github.com/katalvlaran/lvshrink/structure"
)

// testGen is a generator identity keyed by name.
type testGen string

func (g testGen) GeneratorKey() any { return g }

// part appends one child to a builder.
type part func(b *structure.Builder)

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func leaf(v int) part {
	return leafIn(v, distribution.Unbounded())
}

func leafIn(v int, d distribution.Int) part {
	return func(b *structure.Builder) { must(b.AddInt(v, d)) }
}

func sub(g structure.Generator, parts ...part) part {
	return func(b *structure.Builder) {
		c, err := b.SubStructure(g)
		must(err)
		for _, p := range parts {
			p(c)
		}
	}
}

func tree(g structure.Generator, parts ...part) *structure.Node {
	b := structure.NewBuilder(g)
	for _, p := range parts {
		p(b)
	}
	return b.Build()
}

// minimize is a minimal driver loop. With dedup set, candidates value-equal
// to one already tested are skipped without counting as a proposal.
func minimize(root *structure.Node, fails func(*structure.Node) bool, dedup bool) (*structure.Node, []*structure.Node) {
	seen := map[string]bool{}
	var proposals []*structure.Node
	step := root.Shrink()
	for step != nil {
		cand := step.Apply(root)
		if cand == nil || cand == root || (dedup && seen[cand.String()]) {
			step = step.OnFailure()
			continue
		}
		seen[cand.String()] = true
		proposals = append(proposals, cand)
		if fails(cand) {
			root = cand
			step = step.OnSuccess(cand)
		} else {
			step = step.OnFailure()
		}
	}
	return root, proposals
}

// walk visits e and all its descendants in pre-order.
func walk(e structure.Element, visit func(structure.Element)) {
	visit(e)
	if n, ok := e.(*structure.Node); ok {
		for _, c := range n.Children() {
			walk(c, visit)
		}
	}
}

// drawTree builds a random tree of bounded depth.
func drawTree(rt *rapid.T) *structure.Node {
	b := structure.NewBuilder(testGen("root"))
	fill(rt, b, 0)
	return b.Build()
}

func fill(rt *rapid.T, b *structure.Builder, depth int) {
	n := rapid.IntRange(0, 4).Draw(rt, "children")
	for i := 0; i < n; i++ {
		if depth < 3 && rapid.Bool().Draw(rt, "composite") {
			c, err := b.SubStructure(testGen(rapid.SampledFrom([]string{"a", "b"}).Draw(rt, "gen")))
			must(err)
			fill(rt, c, depth+1)
			continue
		}
		must(b.AddInt(rapid.IntRange(-50, 50).Draw(rt, "value"), distribution.Unbounded()))
	}
}

func intAt(n *structure.Node, path ...int) int {
	var e structure.Element = n
	for _, i := range path {
		e = e.(*structure.Node).Child(i)
	}
	return e.(*structure.IntData).Value()
}
