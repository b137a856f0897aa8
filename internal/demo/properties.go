package demo

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/lvshrink/distribution"
	"github.com/katalvlaran/lvshrink/gen"
)

// SumLimit is the bound of the sum-below property.
const SumLimit = 1000

// MaxTreeDepth is the bound of the tree-depth property.
const MaxTreeDepth = 2

func init() {
	register(newProperty("sum-below",
		fmt.Sprintf("lists of ints in [0,1000] sum below %d", SumLimit),
		intLists(0, 1000),
		func(xs []int) bool { return sum(xs) < SumLimit },
		renderInts))

	register(newProperty("sorted",
		"lists of ints in [-100,100] are sorted ascending",
		intLists(-100, 100),
		isSorted,
		renderInts))

	register(newProperty("no-duplicates",
		"lists of ints in [0,50] hold no duplicates",
		intLists(0, 50),
		func(xs []int) bool { return !hasDuplicate(xs) },
		renderInts))

	register(newProperty("tree-depth",
		fmt.Sprintf("random binary trees are at most %d deep", MaxTreeDepth),
		Trees(),
		func(t *Tree) bool { return t.Depth() <= MaxTreeDepth },
		func(t *Tree) string { return t.String() }))
}

func intLists(lo, hi int) *gen.Generator[[]int] {
	return gen.List(gen.Int(distribution.Range(lo, hi)), distribution.Natural(20))
}

func renderInts(xs []int) string { return fmt.Sprint(xs) }

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func isSorted(xs []int) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] < xs[i-1] {
			return false
		}
	}
	return true
}

func hasDuplicate(xs []int) bool {
	seen := make(map[int]struct{}, len(xs))
	for _, x := range xs {
		if _, ok := seen[x]; ok {
			return true
		}
		seen[x] = struct{}{}
	}
	return false
}

// Tree is a binary tree with values on its leaves.
type Tree struct {
	Left, Right *Tree
	Value       int
}

// Depth returns the number of levels; a leaf has depth 1.
func (t *Tree) Depth() int {
	if t == nil {
		return 0
	}
	return 1 + max(t.Left.Depth(), t.Right.Depth())
}

// String renders leaves as their value and branches as (left right).
func (t *Tree) String() string {
	if t.Left == nil && t.Right == nil {
		return strconv.Itoa(t.Value)
	}
	return "(" + t.Left.String() + " " + t.Right.String() + ")"
}

// Trees generates binary trees. Leaves are twice as likely as branches,
// which keeps the expected size finite.
func Trees() *gen.Generator[*Tree] {
	return gen.Recursive("tree", func(self *gen.Generator[*Tree]) *gen.Generator[*Tree] {
		leaf := gen.Map(gen.Int(distribution.Range(0, 9)), func(v int) *Tree { return &Tree{Value: v} })
		branch := gen.Zip(self, self, func(l, r *Tree) *Tree { return &Tree{Left: l, Right: r} })
		return gen.OneOf(leaf, leaf, branch)
	})
}
