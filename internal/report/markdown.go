package report

import (
	"fmt"
	"io"
	"strings"
)

// WriteMarkdown writes the summary as a Markdown report
func WriteMarkdown(w io.Writer, summary Summary, opts Options) error {
	var b strings.Builder

	b.WriteString("# CSS Analysis\n\n")
	b.WriteString("| File | Selectors | Rules | Properties |\n")
	b.WriteString("|------|----------:|------:|-----------:|\n")

	for _, f := range summary.Files {
		fmt.Fprintf(&b, "| `%s` | %d | %d | %d |\n",
			escapeTableCell(f.Path), f.Analysis.SelectorCount, f.Analysis.RuleCount, f.Analysis.PropertyCount)
	}
	if len(summary.Files) > 1 {
		fmt.Fprintf(&b, "| **Total** | %d | %d | %d |\n",
			summary.Totals.SelectorCount, summary.Totals.RuleCount, summary.Totals.PropertyCount)
	}

	if opts.ShowCaveats && summary.CaveatCount() > 0 {
		b.WriteString("\n## Caveats\n\n")
		for _, f := range summary.Files {
			for _, c := range f.Caveats {
				fmt.Fprintf(&b, "- `%s:%d:%d` %s\n", f.Path, c.Line, c.Column, c.Message)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeTableCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
