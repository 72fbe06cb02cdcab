// Package report renders seess results for terminals, tools and humans.
package report

import (
	"github.com/yacobolo/seess"
	"github.com/yacobolo/seess/internal/caveat"
)

// Format represents the report output format
type Format string

const (
	// FormatText is the human-readable terminal format (default)
	FormatText Format = "text"
	// FormatJSON exports structured data (tooling integration)
	FormatJSON Format = "json"
	// FormatMarkdown generates a Markdown table (shareable reports)
	FormatMarkdown Format = "markdown"
)

// ToolName is printed after caveat lines, golangci-lint style
const ToolName = "seess"

// FileResult is the analysis of one input
type FileResult struct {
	Path     string
	Analysis seess.CSSAnalysis
	Caveats  []caveat.Caveat
}

// Summary aggregates the results of one run
type Summary struct {
	Files  []FileResult
	Totals seess.CSSAnalysis
}

// NewSummary builds a summary and its totals from per-file results
func NewSummary(files []FileResult) Summary {
	summary := Summary{Files: files}
	for _, f := range files {
		summary.Totals = summary.Totals.Add(f.Analysis)
	}
	return summary
}

// CaveatCount returns the number of caveats across all files
func (s Summary) CaveatCount() int {
	n := 0
	for _, f := range s.Files {
		n += len(f.Caveats)
	}
	return n
}

// Options control rendering
type Options struct {
	UseColors   bool // Force color output (text format)
	ShowCaveats bool // Print caveats (text and markdown formats)
	PrintLines  bool // Show source lines under caveats
}
