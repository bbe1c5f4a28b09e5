package nset

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// DefaultMaxDepth bounds set nesting when Parser.MaxDepth is not set.
const DefaultMaxDepth = 512

// Parser reads the brace grammar:
//
//	set     := '{' [ element (',' element)* ] '}'
//	element := set | integer
//	integer := '-'? digit+
//
// ASCII whitespace is allowed between tokens. Duplicate elements collapse as
// they would through Add. The zero Parser is ready to use.
type Parser struct {
	// MaxDepth limits how deeply sets may nest; the outer set is depth 1.
	MaxDepth int
}

var defaultParser Parser

// Parse parses text with the default Parser.
func Parse(text string) (*Set, error) {
	return defaultParser.Parse(text)
}

// MustParse is like Parse but panics on malformed input. It is meant for
// literals in code and tests.
func MustParse(text string) *Set {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse requires text to hold exactly one set expression, optionally padded
// with whitespace. On failure it returns a *ParseError and no set.
func (p *Parser) Parse(text string) (*Set, error) {
	maxDepth := p.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	c := &cursor{input: text, maxDepth: maxDepth}

	c.skipSpace()
	if c.eof() {
		return nil, c.fail("empty input")
	}
	if c.peek() != '{' {
		return nil, c.failf("input must start with '{', found %q", c.peekRune())
	}

	s, err := c.parseSet(1)
	if err != nil {
		return nil, err
	}

	c.skipSpace()
	if !c.eof() {
		return nil, c.failf("unexpected %q after the closing '}'", c.peekRune())
	}
	return s, nil
}

// ParseElement parses a lone element: an integer or a set.
func (p *Parser) ParseElement(text string) (Element, error) {
	maxDepth := p.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	c := &cursor{input: text, maxDepth: maxDepth}

	e, err := c.parseElement(0)
	if err != nil {
		return Element{}, err
	}
	c.skipSpace()
	if !c.eof() {
		return Element{}, c.failf("unexpected %q after the element", c.peekRune())
	}
	return e, nil
}

// cursor is the single left-to-right scan over one input.
type cursor struct {
	input    string
	pos      int
	maxDepth int
}

func (c *cursor) eof() bool { return c.pos >= len(c.input) }

func (c *cursor) peek() byte { return c.input[c.pos] }

// peekRune decodes the character at the cursor for error messages.
func (c *cursor) peekRune() rune {
	r, _ := utf8.DecodeRuneInString(c.input[c.pos:])
	return r
}

func (c *cursor) skipSpace() {
	for !c.eof() && isSpace(c.peek()) {
		c.pos++
	}
}

func (c *cursor) fail(msg string) *ParseError {
	return &ParseError{Offset: c.pos, Msg: msg}
}

func (c *cursor) failf(format string, args ...any) *ParseError {
	return c.fail(fmt.Sprintf(format, args...))
}

// parseSet expects the cursor on '{'.
func (c *cursor) parseSet(depth int) (*Set, error) {
	if depth > c.maxDepth {
		return nil, c.failf("sets nested deeper than %d", c.maxDepth)
	}
	c.pos++

	result := &Set{}
	c.skipSpace()
	if c.eof() {
		return nil, c.fail("unterminated set, expected '}'")
	}
	if c.peek() == '}' {
		c.pos++
		return result, nil
	}

	for {
		e, err := c.parseElement(depth)
		if err != nil {
			return nil, err
		}
		result.Add(e)

		c.skipSpace()
		if c.eof() {
			return nil, c.fail("unterminated set, expected ',' or '}'")
		}
		switch c.peek() {
		case ',':
			c.pos++
		case '}':
			c.pos++
			return result, nil
		default:
			return nil, c.failf("expected ',' or '}', found %q", c.peekRune())
		}
	}
}

func (c *cursor) parseElement(depth int) (Element, error) {
	c.skipSpace()
	if c.eof() {
		return Element{}, c.fail("unexpected end of input, expected an element")
	}

	ch := c.peek()
	switch {
	case ch == '{':
		nested, err := c.parseSet(depth + 1)
		if err != nil {
			return Element{}, err
		}
		return Nested(nested), nil
	case isDigit(ch) || ch == '-' && c.pos+1 < len(c.input) && isDigit(c.input[c.pos+1]):
		v, err := c.parseInt()
		if err != nil {
			return Element{}, err
		}
		return Int(v), nil
	default:
		return Element{}, c.failf("unexpected %q, expected an integer or '{'", c.peekRune())
	}
}

func (c *cursor) parseInt() (int64, error) {
	start := c.pos
	if c.peek() == '-' {
		c.pos++
	}
	for !c.eof() && isDigit(c.peek()) {
		c.pos++
	}

	literal := c.input[start:c.pos]
	v, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return 0, &ParseError{Offset: start, Msg: fmt.Sprintf("integer %s out of range", literal)}
	}
	return v, nil
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
