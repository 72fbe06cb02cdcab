// Package seess provides heuristic statistics for CSS source text.
//
// seess counts selectors, rule blocks and property declarations in a single
// pass over the input. It does not build a syntax tree and never rejects
// input: malformed CSS simply yields best-effort counts.
//
// # Analysis
//
//	result := seess.AnalyzeCSS("h1, h2 { color: red; }")
//	// result.SelectorCount == 2
//	// result.RuleCount == 1
//	// result.PropertyCount == 1
//
// # Limitations
//
// Comments and string literals are scanned literally, an at-rule prelude such
// as a media condition counts as one selector, and declarations nested two or
// more blocks deep are not counted. The internal/caveat package can report
// when an input is affected by any of these.
//
// # CLI Tool
//
// seess also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/seess/cmd/seess@latest
package seess

// Public API:
// - AnalyzeCSS(input string) CSSAnalysis
// - Version
