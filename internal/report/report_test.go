package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/seess"
	"github.com/yacobolo/seess/internal/caveat"
)

func sampleSummary() Summary {
	return NewSummary([]FileResult{
		{
			Path:     "web/base.css",
			Analysis: seess.AnalyzeCSS("body { color: red; }"),
		},
		{
			Path:     "web/media.css",
			Analysis: seess.AnalyzeCSS("@media (max-width: 600px) { .container { width: 100%; } }"),
			Caveats: []caveat.Caveat{{
				Kind:       caveat.KindNestedBlock,
				Message:    caveat.MsgNestedBlock,
				Offset:     38,
				Line:       1,
				Column:     39,
				SourceLine: "@media (max-width: 600px) { .container { width: 100%; } }",
			}},
		},
	})
}

func TestNewSummaryTotals(t *testing.T) {
	summary := sampleSummary()
	assert.Equal(t, seess.CSSAnalysis{SelectorCount: 2, RuleCount: 2, PropertyCount: 1}, summary.Totals)
	assert.Equal(t, 1, summary.CaveatCount())
}

func TestDetermineFormat(t *testing.T) {
	tests := []struct {
		flag     string
		expected Format
	}{
		{"", FormatText},
		{"text", FormatText},
		{"json", FormatJSON},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"yaml", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			require.Equal(t, tt.expected, DetermineFormat(tt.flag))
		})
	}
}

func TestBuildCaretIndicator(t *testing.T) {
	tests := []struct {
		name       string
		sourceLine string
		column     int
		want       string
	}{
		{
			name:       "spaces only",
			sourceLine: "  a { b { } }",
			column:     9,
			want:       "        ^",
		},
		{
			name:       "tabs and spaces",
			sourceLine: "\t\tb { }",
			column:     5,
			want:       "\t\t  ^",
		},
		{
			name:       "start of line",
			sourceLine: "}",
			column:     1,
			want:       "^",
		},
		{
			name:       "column 0 fallback",
			sourceLine: "some line",
			column:     0,
			want:       "^",
		},
		{
			name:       "column beyond line length",
			sourceLine: "short",
			column:     100,
			want:       "     ^",
		},
		{
			name:       "multibyte prefix",
			sourceLine: ".日本 { }",
			column:     5,
			want:       "    ^",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, buildCaretIndicator(tt.sourceLine, tt.column))
		})
	}
}

func TestTextReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &TextReporter{w: &buf, showCaveats: true, printLines: true}
	r.Print(sampleSummary())

	want := "web/base.css\n" +
		"  Selectors:   1\n" +
		"  Rules:       1\n" +
		"  Properties:  1\n" +
		"\n" +
		"web/media.css\n" +
		"  Selectors:   1\n" +
		"  Rules:       1\n" +
		"  Properties:  0\n" +
		"web/media.css:1:39: " + caveat.MsgNestedBlock + " (seess)\n" +
		"\t@media (max-width: 600px) { .container { width: 100%; } }\n" +
		"\t                                      ^\n" +
		"\n" +
		"Total (2 files)\n" +
		"  Selectors:   2\n" +
		"  Rules:       2\n" +
		"  Properties:  1\n"
	assert.Equal(t, want, buf.String())
}

func TestTextReporter_EmptyFile(t *testing.T) {
	var buf bytes.Buffer
	r := &TextReporter{w: &buf}
	r.Print(NewSummary([]FileResult{{
		Path:     "web/empty.css",
		Analysis: seess.AnalyzeCSS("/* nothing yet */"),
	}}))

	assert.Equal(t, "web/empty.css\n  No rules found\n", buf.String())
}

func TestTextReporter_HintWhenCaveatsHidden(t *testing.T) {
	var buf bytes.Buffer
	r := &TextReporter{w: &buf}
	r.Print(sampleSummary())

	assert.NotContains(t, buf.String(), "(seess)")
	assert.Contains(t, buf.String(), "Hint: Run with --caveats")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleSummary(), FormatJSON, Options{}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, seess.Version, decoded["version"])

	files := decoded["files"].([]any)
	require.Len(t, files, 2)

	first := files[0].(map[string]any)
	assert.Equal(t, "web/base.css", first["path"])
	assert.InDelta(t, 1, first["selector_count"], 0)
	assert.InDelta(t, 1, first["rule_count"], 0)
	assert.InDelta(t, 1, first["property_count"], 0)
	assert.NotContains(t, first, "caveats")

	second := files[1].(map[string]any)
	caveats := second["caveats"].([]any)
	require.Len(t, caveats, 1)
	assert.Equal(t, "nested-block", caveats[0].(map[string]any)["kind"])

	totals := decoded["totals"].(map[string]any)
	assert.InDelta(t, 2, totals["rule_count"], 0)
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleSummary(), FormatMarkdown, Options{ShowCaveats: true}))

	out := buf.String()
	assert.Contains(t, out, "# CSS Analysis")
	assert.Contains(t, out, "| `web/base.css` | 1 | 1 | 1 |")
	assert.Contains(t, out, "| `web/media.css` | 1 | 1 | 0 |")
	assert.Contains(t, out, "| **Total** | 2 | 2 | 1 |")
	assert.Contains(t, out, "## Caveats")
	assert.Contains(t, out, "- `web/media.css:1:39` "+caveat.MsgNestedBlock)
}

func TestWriteMarkdown_SingleFileHasNoTotal(t *testing.T) {
	summary := NewSummary([]FileResult{{Path: "a|b.css", Analysis: seess.AnalyzeCSS("a{}")}})

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, summary, Options{}))
	assert.NotContains(t, buf.String(), "Total")
	assert.Contains(t, buf.String(), "`a\\|b.css`")
}
