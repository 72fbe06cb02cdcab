package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yacobolo/seess/internal/caveat"
)

// TextReporter prints results for terminals
type TextReporter struct {
	w           io.Writer
	useColors   bool
	showCaveats bool
	printLines  bool
}

// NewTextReporter creates a text reporter with the given options
func NewTextReporter(w io.Writer, opts Options) *TextReporter {
	return &TextReporter{
		w:           w,
		useColors:   shouldUseColors(opts),
		showCaveats: opts.ShowCaveats,
		printLines:  opts.PrintLines,
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(opts Options) bool {
	// Explicit flag wins
	if opts.UseColors {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// Print outputs every file result followed by totals when there is more than one file
func (r *TextReporter) Print(summary Summary) {
	for i, file := range summary.Files {
		if i > 0 {
			fmt.Fprintln(r.w, "")
		}
		r.printFile(file)
	}

	if len(summary.Files) > 1 {
		fmt.Fprintln(r.w, "")
		header := fmt.Sprintf("Total (%s)", pluralizeCount(len(summary.Files), "file", "files"))
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, header, r.useColors))
		r.printCounts(summary)
	}

	if !r.showCaveats && summary.CaveatCount() > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: Run with --caveats to see why counts may be inaccurate", r.useColors))
	}
}

func (r *TextReporter) printFile(file FileResult) {
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, file.Path, r.useColors))
	if file.Analysis.IsZero() {
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "  No rules found", r.useColors))
	} else {
		r.printCounts(Summary{Totals: file.Analysis})
	}

	if r.showCaveats {
		for _, c := range file.Caveats {
			r.printCaveat(file.Path, c)
		}
	}
}

func (r *TextReporter) printCounts(summary Summary) {
	fmt.Fprintf(r.w, "  Selectors:   %d\n", summary.Totals.SelectorCount)
	fmt.Fprintf(r.w, "  Rules:       %d\n", summary.Totals.RuleCount)
	fmt.Fprintf(r.w, "  Properties:  %d\n", summary.Totals.PropertyCount)
}

// printCaveat formats a single caveat in golangci-lint style
func (r *TextReporter) printCaveat(path string, c caveat.Caveat) {
	// Format: file:line:col: message (seess)
	location := fmt.Sprintf("%s:%d:%d:", path, c.Line, c.Column)
	suffix := fmt.Sprintf(" (%s)", ToolName)

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		c.Message,
		RenderStyle(StyleGray, suffix, r.useColors))

	if r.printLines && c.SourceLine != "" {
		fmt.Fprintf(r.w, "\t%s\n", c.SourceLine)
		caret := buildCaretIndicator(c.SourceLine, c.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column
// Handles tabs vs spaces so the caret lines up in any tab width
func buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	// column is counted in runes
	runes := []rune(sourceLine)
	prefixLen := column - 1
	if prefixLen > len(runes) {
		prefixLen = len(runes)
	}

	var padding strings.Builder
	for _, ch := range runes[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
