package report

import (
	"fmt"
	"io"
)

// DetermineFormat maps a format flag to a Format. Unknown values fall back to text.
func DetermineFormat(formatFlag string) Format {
	switch formatFlag {
	case "json":
		return FormatJSON
	case "markdown", "md":
		return FormatMarkdown
	default:
		return FormatText
	}
}

// Write renders the summary in the requested format
func Write(w io.Writer, summary Summary, format Format, opts Options) error {
	switch format {
	case FormatJSON:
		if err := WriteJSON(w, summary); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}
	case FormatMarkdown:
		if err := WriteMarkdown(w, summary, opts); err != nil {
			return fmt.Errorf("writing Markdown: %w", err)
		}
	default:
		NewTextReporter(w, opts).Print(summary)
	}
	return nil
}
