// Package caveat explains when seess counts are likely to be inaccurate.
//
// The analyzer treats '{', '}', ';' and ',' literally wherever they appear.
// Inspect lexes the same input with a real CSS tokenizer and reports the
// constructs that the analyzer is known to miscount. It never changes counts.
package caveat

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Kind identifies a class of caveat
type Kind string

// Caveat kinds
const (
	KindComment         Kind = "comment"
	KindString          Kind = "string"
	KindNestedBlock     Kind = "nested-block"
	KindUnbalancedClose Kind = "unbalanced-close"
	KindUnclosedBlock   Kind = "unclosed-block"
	KindTrailingText    Kind = "trailing-text"
)

// Messages for each caveat kind
const (
	MsgComment         = "comment contains %q which is counted as CSS structure"
	MsgString          = "string or url contains %q which is counted as CSS structure"
	MsgNestedBlock     = "nested block: declarations more than one level deep are not counted"
	MsgUnbalancedClose = "unmatched closing brace is ignored"
	MsgUnclosedBlock   = "input ends inside %d open block(s)"
	MsgTrailingText    = "text after the last block is discarded"
)

// Caveat is a single diagnostic about the analyzed input
type Caveat struct {
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	Offset     int    `json:"offset"` // 0-based byte offset of the first occurrence
	Line       int    `json:"line"`   // 1-based
	Column     int    `json:"column"` // 1-based
	SourceLine string `json:"source,omitempty"`
}

// inspector tracks brace depth the same way the analyzer does
type inspector struct {
	input        string
	depth        int
	offset       int
	pendingStart int // offset of the first discarded-text token at depth 0, -1 if none
	seen         map[Kind]bool
	caveats      []Caveat
}

// Inspect lexes input and returns at most one caveat per kind, ordered by offset.
func Inspect(input string) []Caveat {
	ins := &inspector{
		input:        input,
		pendingStart: -1,
		seen:         make(map[Kind]bool),
	}

	lexer := css.NewLexer(parse.NewInputString(input))

	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal
			break
		}

		ins.token(tt, text)
		ins.offset += len(text)
	}

	ins.finish()
	sort.SliceStable(ins.caveats, func(i, j int) bool {
		return ins.caveats[i].Offset < ins.caveats[j].Offset
	})
	return ins.caveats
}

func (ins *inspector) token(tt css.TokenType, text []byte) {
	switch tt {
	case css.CommentToken:
		if ch, ok := structuralChar(text); ok {
			ins.add(KindComment, ins.offset, fmt.Sprintf(MsgComment, ch))
		}
		ins.braces(text)

	case css.StringToken, css.BadStringToken, css.URLToken, css.BadURLToken:
		if ch, ok := structuralChar(text); ok {
			ins.add(KindString, ins.offset, fmt.Sprintf(MsgString, ch))
		}
		ins.pending()
		ins.braces(text)

	case css.WhitespaceToken:
		// no effect on structure

	case css.LeftBraceToken, css.RightBraceToken:
		ins.braces(text)

	default:
		ins.pending()
		ins.braces(text)
	}
}

// pending records the start of selector text that may later be discarded
func (ins *inspector) pending() {
	if ins.depth == 0 && ins.pendingStart < 0 {
		ins.pendingStart = ins.offset
	}
}

// braces replays every brace in text against the depth counter
func (ins *inspector) braces(text []byte) {
	for i, b := range text {
		switch b {
		case '{':
			if ins.depth == 0 {
				ins.pendingStart = -1
			} else {
				ins.add(KindNestedBlock, ins.offset+i, MsgNestedBlock)
			}
			ins.depth++
		case '}':
			if ins.depth == 0 {
				ins.add(KindUnbalancedClose, ins.offset+i, MsgUnbalancedClose)
				continue
			}
			ins.depth--
		}
	}
}

func (ins *inspector) finish() {
	if ins.depth > 0 {
		ins.add(KindUnclosedBlock, len(ins.input), fmt.Sprintf(MsgUnclosedBlock, ins.depth))
	}
	if ins.depth == 0 && ins.pendingStart >= 0 {
		ins.add(KindTrailingText, ins.pendingStart, MsgTrailingText)
	}
}

func (ins *inspector) add(kind Kind, offset int, msg string) {
	if ins.seen[kind] {
		return
	}
	ins.seen[kind] = true

	line, _, _ := parse.Position(strings.NewReader(ins.input), offset)
	ins.caveats = append(ins.caveats, Caveat{
		Kind:       kind,
		Message:    msg,
		Offset:     offset,
		Line:       line,
		Column:     column(ins.input, offset),
		SourceLine: sourceLine(ins.input, offset),
	})
}

// column returns the 1-based rune column of offset; invalid bytes count as one rune each
func column(input string, offset int) int {
	if offset > len(input) {
		offset = len(input)
	}
	lineStart := strings.LastIndexByte(input[:offset], '\n') + 1
	return utf8.RuneCountInString(input[lineStart:offset]) + 1
}

// structuralChar returns the first character in text that the analyzer treats as structure
func structuralChar(text []byte) (string, bool) {
	for _, b := range text {
		switch b {
		case '{', '}', ';', ',':
			return string(b), true
		}
	}
	return "", false
}

// sourceLine returns the full line of input containing offset, without the newline
func sourceLine(input string, offset int) string {
	if offset > len(input) {
		offset = len(input)
	}
	start := strings.LastIndexByte(input[:offset], '\n') + 1
	end := strings.IndexByte(input[offset:], '\n')
	if end < 0 {
		return strings.TrimRight(input[start:], "\r")
	}
	return strings.TrimRight(input[start:offset+end], "\r")
}

