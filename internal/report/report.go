// Package report renders property outcomes for the lvshrink CLI.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sergi/go-diff/diffmatchpatch"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvshrink/internal/demo"
	"github.com/katalvlaran/lvshrink/structure"
)

// Document is the YAML form of an outcome.
type Document struct {
	Property  string `yaml:"property"`
	Status    string `yaml:"status"`
	Seed      int64  `yaml:"seed"`
	Iteration int    `yaml:"iteration,omitempty"`
	Original  string `yaml:"original,omitempty"`
	Minimized string `yaml:"minimized,omitempty"`
	Cause     string `yaml:"cause,omitempty"`
	Token     string `yaml:"token,omitempty"`
	Shrink    *Stats `yaml:"shrink,omitempty"`
}

// Stats is the YAML form of a shrinker.Result.
type Stats struct {
	Attempts      int     `yaml:"attempts"`
	Successes     int     `yaml:"successes"`
	Skipped       int     `yaml:"skipped"`
	Truncated     bool    `yaml:"truncated"`
	Seconds       float64 `yaml:"seconds"`
	OriginalNodes int     `yaml:"original_nodes"`
	MinimalNodes  int     `yaml:"minimized_nodes"`
}

const (
	statusPassed = "passed"
	statusFailed = "failed"
)

// NewDocument converts out (nil when the property passed) into a Document.
func NewDocument(name string, seed int64, out *demo.Outcome) Document {
	if out == nil {
		return Document{Property: name, Status: statusPassed, Seed: seed}
	}
	return Document{
		Property:  name,
		Status:    statusFailed,
		Seed:      seed,
		Iteration: out.Iteration,
		Original:  out.Original,
		Minimized: out.Minimized,
		Cause:     out.Cause,
		Token:     out.Token,
		Shrink: &Stats{
			Attempts:      out.Shrink.Attempts,
			Successes:     out.Shrink.Successes,
			Skipped:       out.Shrink.Skipped,
			Truncated:     out.Shrink.Truncated,
			Seconds:       out.Shrink.Duration.Seconds(),
			OriginalNodes: CountNodes(out.OriginalTree),
			MinimalNodes:  CountNodes(out.MinimizedTree),
		},
	}
}

// WriteYAML encodes doc to w.
func WriteYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}

// WriteText renders doc for a terminal. Colour follows color.NoColor.
func WriteText(w io.Writer, doc Document) error {
	var sb strings.Builder

	if doc.Status == statusPassed {
		sb.WriteString(color.New(color.FgGreen).Sprintf("PASS %s", doc.Property))
		fmt.Fprintf(&sb, " (seed %d)\n", doc.Seed)
		_, err := io.WriteString(w, sb.String())
		return err
	}

	sb.WriteString(color.New(color.FgRed, color.Bold).Sprintf("FAIL %s", doc.Property))
	fmt.Fprintf(&sb, " (seed %d, iteration %d)\n", doc.Seed, doc.Iteration)
	fmt.Fprintf(&sb, "  original:  %s\n", doc.Original)
	fmt.Fprintf(&sb, "  minimized: %s\n", color.New(color.FgYellow).Sprint(doc.Minimized))
	fmt.Fprintf(&sb, "  diff:      %s\n", Diff(doc.Original, doc.Minimized))
	if doc.Cause != "" {
		fmt.Fprintf(&sb, "  panic:     %s\n", doc.Cause)
	}
	if doc.Shrink != nil {
		sb.WriteString(statsTable(doc.Shrink))
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  recheck:   %s (%s)\n",
		color.New(color.FgCyan).Sprint(doc.Token), humanize.Bytes(uint64(len(doc.Token))))

	_, err := io.WriteString(w, sb.String())
	return err
}

func statsTable(s *Stats) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Attempts", "Accepted", "Skipped", "Nodes", "Time"})
	nodes := fmt.Sprintf("%s → %s", humanize.Comma(int64(s.OriginalNodes)), humanize.Comma(int64(s.MinimalNodes)))
	elapsed := humanize.SIWithDigits(s.Seconds, 2, "s")
	attempts := humanize.Comma(int64(s.Attempts))
	if s.Truncated {
		attempts += " (capped)"
	}
	tbl.AppendRow(table.Row{attempts, humanize.Comma(int64(s.Successes)), humanize.Comma(int64(s.Skipped)), nodes, elapsed})
	return tbl.Render()
}

// Diff marks deletions as {-x-} and insertions as {+x+}.
func Diff(from, to string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(from, to, false))

	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString(del.Sprint("{-" + d.Text + "-}"))
		case diffmatchpatch.DiffInsert:
			sb.WriteString(ins.Sprint("{+" + d.Text + "+}"))
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}

// CountNodes returns the number of elements in the tree rooted at n.
func CountNodes(n *structure.Node) int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children() {
		if sub, ok := c.(*structure.Node); ok {
			total += CountNodes(sub)
			continue
		}
		total++
	}
	return total
}
