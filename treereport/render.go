// Package treereport renders a tree.RenderReport as colorized,
// terminal-friendly text, grounded on the teacher's use of
// github.com/charmbracelet/lipgloss for styled CLI output. It's a strict
// optional extra over RenderReport.String(): nothing here is required to
// read a report, only to make one pleasant to read in a terminal.
package treereport

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nodelake/machinetree/tree"
)

var (
	headingStyle    = lipgloss.NewStyle().Bold(true)
	renderedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	unlinkedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	unrenderedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// Render produces a colorized rendering of report, grouping rendered,
// unlinked, and unrendered keys the way RenderReport.String does, with
// section headings styled for a terminal.
func Render(report tree.RenderReport) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("RenderReport"))
	b.WriteString("\n")
	writeSection(&b, "Rendered", renderedStyle, names(report.RenderedKeys))
	writeSection(&b, "Unlinked", unlinkedStyle, unlinkedNames(report.UnlinkedNodePairs))
	writeSection(&b, "Unrendered", unrenderedStyle, names(report.UnrenderedKeys))
	return b.String()
}

func names(keys []tree.NodeKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.Name()
	}
	return out
}

func unlinkedNames(pairs []tree.UnlinkedPair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.Key.Name()
	}
	return out
}

func writeSection(b *strings.Builder, label string, style lipgloss.Style, items []string) {
	b.WriteString(style.Render(label + ":"))
	if len(items) == 0 {
		b.WriteString(" (none)\n")
		return
	}
	b.WriteString("\n")
	for _, item := range items {
		b.WriteString("  - " + item + "\n")
	}
}
