package expr

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokSet
	tokInt
	tokIdent
	tokOp
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) is(op string) bool {
	return (t.kind == tokOp || t.kind == tokIdent) && t.text == op
}

func (t token) describe() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.text)
}

var twoCharOps = []string{"==", "!=", "<="}

const oneCharOps = "+-*()="

func tokenize(input string) ([]token, error) {
	var tokens []token
	pos := 0
	for pos < len(input) {
		ch := input[pos]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			pos++
		case ch == '{':
			end, err := matchBraces(input, pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokSet, text: input[pos:end], pos: pos})
			pos = end
		case isDigit(ch):
			start := pos
			for pos < len(input) && isDigit(input[pos]) {
				pos++
			}
			tokens = append(tokens, token{kind: tokInt, text: input[start:pos], pos: start})
		case isIdentStart(ch):
			start := pos
			for pos < len(input) && (isIdentStart(input[pos]) || isDigit(input[pos])) {
				pos++
			}
			tokens = append(tokens, token{kind: tokIdent, text: input[start:pos], pos: start})
		default:
			op := ""
			for _, candidate := range twoCharOps {
				if strings.HasPrefix(input[pos:], candidate) {
					op = candidate
					break
				}
			}
			if op == "" && strings.IndexByte(oneCharOps, ch) >= 0 {
				op = string(ch)
			}
			if op == "" {
				r, _ := utf8.DecodeRuneInString(input[pos:])
				return nil, &SyntaxError{Offset: pos, Msg: fmt.Sprintf("unexpected %q", r)}
			}
			tokens = append(tokens, token{kind: tokOp, text: op, pos: pos})
			pos += len(op)
		}
	}
	return append(tokens, token{kind: tokEOF, pos: len(input)}), nil
}

// matchBraces returns the offset just past the '}' closing the '{' at start.
// Only brace balance is checked here; the set parser validates the rest.
func matchBraces(input string, start int) (int, error) {
	depth := 0
	for i := start; i < len(input); i++ {
		switch input[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, nil
			}
		}
	}
	return 0, &SyntaxError{Offset: len(input), Msg: "unterminated set literal, expected '}'"}
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch == '_' || 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}
