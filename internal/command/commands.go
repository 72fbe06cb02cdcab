package command

import (
	"context"
	"encoding/json"

	"github.com/yacobolo/seess"
)

// Names of the built-in commands
const (
	AnalyzeCommandName = "analyze_css_command"
	VersionCommandName = "get_version"
)

// AnalyzeArgs are the arguments of analyze_css_command
type AnalyzeArgs struct {
	Input string `json:"input"`
}

// VersionResult is the result of get_version
type VersionResult struct {
	Version string `json:"version"`
}

// NewDefaultRegistry returns a registry with analyze_css_command and get_version
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	// Registration of the built-ins cannot fail: names are unique and handlers non-nil.
	_ = r.Register(Command{
		Name:        AnalyzeCommandName,
		Description: "Count selectors, rules and properties in CSS text",
		Handler:     analyzeCSS,
	})
	_ = r.Register(Command{
		Name:        VersionCommandName,
		Description: "Report the seess version",
		Handler:     getVersion,
	})

	return r
}

func analyzeCSS(_ context.Context, args json.RawMessage) (any, error) {
	var a AnalyzeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return seess.AnalyzeCSS(a.Input), nil
}

func getVersion(_ context.Context, _ json.RawMessage) (any, error) {
	return VersionResult{Version: seess.Version}, nil
}
