// Package structure_test provides benchmarks for trace tree operations.
package structure_test

import (
	"testing"

	"github.com/katalvlaran/lvshrink/distribution"
	"github.com/katalvlaran/lvshrink/structure"
)

// wide builds a list of n single-int elements.
func wide(n int) *structure.Node {
	b := structure.NewBuilder(nil)
	_ = b.AddInt(n, distribution.Natural(n))
	for i := 0; i < n; i++ {
		elem, _ := b.SubStructure(nil)
		_ = elem.AddInt(i+1, distribution.Unbounded())
	}
	return b.Build()
}

// BenchmarkReplace_LastLeaf measures copy-on-write of one leaf.
func BenchmarkReplace_LastLeaf(b *testing.B) {
	root := wide(1000)
	last := root.Child(root.Len() - 1).(*structure.Node).Child(0)
	repl := structure.NewBuilder(nil)
	_ = repl.AddInt(0, distribution.Unbounded())
	replacement := repl.Build().Child(0)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = root.Replace(last.ID(), replacement)
	}
}

// BenchmarkFindChildByID measures the containment scan.
func BenchmarkFindChildByID(b *testing.B) {
	root := wide(1000)
	target := root.Child(500).(*structure.Node).Child(0).ID()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = root.FindChildByID(target)
	}
}

// BenchmarkMinimizeList drives a full minimization with a trivial predicate.
func BenchmarkMinimizeList(b *testing.B) {
	root := wide(64)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = minimize(root, func(n *structure.Node) bool { return n.Len() > 2 }, true)
	}
}
