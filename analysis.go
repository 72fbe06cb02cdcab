package seess

import (
	"math"
	"strings"
)

// CSSAnalysis holds the statistics produced by AnalyzeCSS.
// The JSON field names are the stable contract for every serialized form.
type CSSAnalysis struct {
	SelectorCount uint32 `json:"selector_count"` // Selectors across all top-level rules
	RuleCount     uint32 `json:"rule_count"`     // Top-level blocks opened
	PropertyCount uint32 `json:"property_count"` // Declarations directly inside a top-level block
}

// Add returns the field-wise sum of a and other, saturating at math.MaxUint32.
func (a CSSAnalysis) Add(other CSSAnalysis) CSSAnalysis {
	return CSSAnalysis{
		SelectorCount: addSaturating(a.SelectorCount, other.SelectorCount),
		RuleCount:     addSaturating(a.RuleCount, other.RuleCount),
		PropertyCount: addSaturating(a.PropertyCount, other.PropertyCount),
	}
}

// IsZero reports whether no selectors, rules or properties were counted.
func (a CSSAnalysis) IsZero() bool {
	return a == CSSAnalysis{}
}

// AnalyzeCSS scans input once and counts selectors, rules and properties.
//
// Only '{', '}', ';' and ',' are structural. A '{' at depth 0 opens a rule and
// flushes the pending selector text; a ';' at depth 1 is a declaration.
// Excess '}' characters are ignored and unconsumed selector text at the end of
// input is discarded. AnalyzeCSS never fails.
func AnalyzeCSS(input string) CSSAnalysis {
	var analysis CSSAnalysis

	var depth uint32
	var pending strings.Builder

	for _, ch := range input {
		inBlock := depth > 0

		switch {
		case ch == '{':
			if !inBlock {
				// Opening a new top-level rule
				analysis.RuleCount++
				analysis.SelectorCount += countSelectors(pending.String())
				pending.Reset()
			}
			depth++

		case ch == '}':
			if depth > 0 {
				depth--
			}

		case ch == ';' && inBlock && depth == 1:
			analysis.PropertyCount++

		case !inBlock:
			pending.WriteRune(ch)
		}
	}

	return analysis
}

// countSelectors counts the non-empty, trimmed entries of a comma-separated
// selector list.
func countSelectors(selectorList string) uint32 {
	var n uint32
	for _, part := range strings.Split(selectorList, ",") {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	return n
}

func addSaturating(a, b uint32) uint32 {
	if a > math.MaxUint32-b {
		return math.MaxUint32
	}
	return a + b
}
