package report

import (
	"encoding/json"
	"io"

	"github.com/yacobolo/seess"
	"github.com/yacobolo/seess/internal/caveat"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version string            `json:"version"`
	Files   []JSONFile        `json:"files"`
	Totals  seess.CSSAnalysis `json:"totals"`
}

// JSONFile is the analysis of a single input. The counts are inlined so every
// entry carries selector_count, rule_count and property_count.
type JSONFile struct {
	Path string `json:"path"`
	seess.CSSAnalysis
	Caveats []caveat.Caveat `json:"caveats,omitempty"`
}

// WriteJSON writes the summary as indented JSON
func WriteJSON(w io.Writer, summary Summary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONOutput(summary))
}

// buildJSONOutput converts a Summary to JSONOutput
func buildJSONOutput(summary Summary) JSONOutput {
	files := make([]JSONFile, len(summary.Files))
	for i, f := range summary.Files {
		files[i] = JSONFile{
			Path:        f.Path,
			CSSAnalysis: f.Analysis,
			Caveats:     f.Caveats,
		}
	}

	return JSONOutput{
		Version: seess.Version,
		Files:   files,
		Totals:  summary.Totals,
	}
}
