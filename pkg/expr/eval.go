// Package expr evaluates set expressions over named nested sets.
//
// Statements have the forms
//
//	expr
//	name = expr
//	expr == expr | expr != expr | expr <= expr
//	integer in expr | expr in expr
//
// where expr combines set literals, names, P(expr) (powerset) and
// parentheses with '+' (union), '-' (difference) and '*' (intersection).
// '*' binds tighter than '+' and '-'; all three associate to the left.
package expr

import (
	"errors"
	"fmt"
	"strconv"

	pkgerrors "github.com/pkg/errors"

	"nestedset/pkg/nset"
)

// Env resolves set names.
type Env interface {
	Lookup(name string) (*nset.Set, bool)
}

// Binder is an Env that also accepts assignments.
type Binder interface {
	Env
	Bind(name string, s *nset.Set) error
}

// MapEnv is an in-memory Binder.
type MapEnv map[string]*nset.Set

func (m MapEnv) Lookup(name string) (*nset.Set, bool) {
	s, ok := m[name]
	return s, ok
}

func (m MapEnv) Bind(name string, s *nset.Set) error {
	m[name] = s
	return nil
}

// Result is either a set or a truth value.
type Result struct {
	Set    *nset.Set
	Bool   bool
	IsBool bool
}

func (r Result) String() string {
	if r.IsBool {
		return strconv.FormatBool(r.Bool)
	}
	return r.Set.String()
}

// Evaluator evaluates statements against Env. The zero value has no names
// and no powerset limit.
type Evaluator struct {
	Env    Env
	Parser *nset.Parser
	// MaxPowerset caps the operand size of P(); zero or less means no limit.
	MaxPowerset int
}

// Eval evaluates a single statement. Named sets are never modified; every
// set in the result is freshly built or a literal.
func (ev *Evaluator) Eval(input string) (Result, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return Result{}, err
	}
	st := &state{ev: ev, tokens: tokens}

	if st.peek().kind == tokIdent && st.peekAt(1).is("=") {
		return st.assignment()
	}

	res, err := st.statement()
	if err != nil {
		return Result{}, err
	}
	if tok := st.peek(); tok.kind != tokEOF {
		return Result{}, st.unexpected(tok)
	}
	return res, nil
}

type state struct {
	ev     *Evaluator
	tokens []token
	pos    int
}

func (st *state) peek() token { return st.peekAt(0) }

func (st *state) peekAt(n int) token {
	if st.pos+n >= len(st.tokens) {
		return st.tokens[len(st.tokens)-1]
	}
	return st.tokens[st.pos+n]
}

func (st *state) next() token {
	tok := st.peek()
	if tok.kind != tokEOF {
		st.pos++
	}
	return tok
}

func (st *state) expect(op string) error {
	tok := st.next()
	if !tok.is(op) {
		return &SyntaxError{Offset: tok.pos, Msg: fmt.Sprintf("expected %q, found %s", op, tok.describe())}
	}
	return nil
}

func (st *state) unexpected(tok token) error {
	return &SyntaxError{Offset: tok.pos, Msg: "unexpected " + tok.describe()}
}

func (st *state) assignment() (Result, error) {
	name := st.next().text
	st.next() // '='

	binder, ok := st.ev.Env.(Binder)
	if !ok {
		return Result{}, ErrReadOnlyEnv
	}

	s, err := st.expr()
	if err != nil {
		return Result{}, err
	}
	if tok := st.peek(); tok.kind != tokEOF {
		return Result{}, st.unexpected(tok)
	}
	if err := binder.Bind(name, s); err != nil {
		return Result{}, pkgerrors.Wrapf(err, "bind %q", name)
	}
	return Result{Set: s}, nil
}

func (st *state) statement() (Result, error) {
	if v, ok, err := st.integer(); ok || err != nil {
		if err != nil {
			return Result{}, err
		}
		if err := st.expect("in"); err != nil {
			return Result{}, err
		}
		rhs, err := st.expr()
		if err != nil {
			return Result{}, err
		}
		return Result{Bool: rhs.ContainsInt(v), IsBool: true}, nil
	}

	lhs, err := st.expr()
	if err != nil {
		return Result{}, err
	}

	tok := st.peek()
	var compare func(a, b *nset.Set) bool
	switch {
	case tok.is("=="):
		compare = (*nset.Set).Equal
	case tok.is("!="):
		compare = func(a, b *nset.Set) bool { return !a.Equal(b) }
	case tok.is("<="):
		compare = (*nset.Set).IsSubsetOf
	case tok.is("in"):
		compare = func(a, b *nset.Set) bool { return b.ContainsSet(a) }
	default:
		return Result{Set: lhs}, nil
	}
	st.next()

	rhs, err := st.expr()
	if err != nil {
		return Result{}, err
	}
	return Result{Bool: compare(lhs, rhs), IsBool: true}, nil
}

// integer consumes an optionally negated integer literal at the cursor.
func (st *state) integer() (int64, bool, error) {
	tok := st.peek()
	start := tok.pos
	negative := false
	if tok.is("-") && st.peekAt(1).kind == tokInt {
		negative = true
		tok = st.peekAt(1)
	}
	if tok.kind != tokInt {
		return 0, false, nil
	}

	literal := tok.text
	if negative {
		literal = "-" + literal
		st.next()
	}
	st.next()
	v, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return 0, false, &SyntaxError{Offset: start, Msg: fmt.Sprintf("integer %s out of range", literal)}
	}
	return v, true, nil
}

func (st *state) expr() (*nset.Set, error) {
	result, err := st.term()
	if err != nil {
		return nil, err
	}
	for {
		tok := st.peek()
		if !tok.is("+") && !tok.is("-") {
			return result, nil
		}
		st.next()

		rhs, err := st.term()
		if err != nil {
			return nil, err
		}
		if tok.text == "+" {
			result = result.Union(rhs)
		} else {
			result = result.Difference(rhs)
		}
	}
}

func (st *state) term() (*nset.Set, error) {
	result, err := st.factor()
	if err != nil {
		return nil, err
	}
	for st.peek().is("*") {
		st.next()
		rhs, err := st.factor()
		if err != nil {
			return nil, err
		}
		result = result.Intersection(rhs)
	}
	return result, nil
}

func (st *state) factor() (*nset.Set, error) {
	tok := st.next()
	switch {
	case tok.kind == tokSet:
		return st.literal(tok)
	case tok.is("("):
		s, err := st.expr()
		if err != nil {
			return nil, err
		}
		if err := st.expect(")"); err != nil {
			return nil, err
		}
		return s, nil
	case tok.kind == tokIdent && st.peek().is("("):
		return st.call(tok)
	case tok.kind == tokIdent:
		s, ok := st.lookup(tok.text)
		if !ok {
			return nil, pkgerrors.Wrapf(ErrUnknownSet, "%q", tok.text)
		}
		// names are returned as copies so results never alias stored sets
		return s.Clone(), nil
	default:
		return nil, st.unexpected(tok)
	}
}

func (st *state) lookup(name string) (*nset.Set, bool) {
	if st.ev.Env == nil {
		return nil, false
	}
	return st.ev.Env.Lookup(name)
}

func (st *state) literal(tok token) (*nset.Set, error) {
	parser := st.ev.Parser
	if parser == nil {
		parser = &nset.Parser{}
	}
	s, err := parser.Parse(tok.text)
	if err != nil {
		var perr *nset.ParseError
		if errors.As(err, &perr) {
			return nil, &SyntaxError{Offset: tok.pos + perr.Offset, Msg: perr.Msg}
		}
		return nil, err
	}
	return s, nil
}

func (st *state) call(fn token) (*nset.Set, error) {
	st.next() // '('
	arg, err := st.expr()
	if err != nil {
		return nil, err
	}
	if err := st.expect(")"); err != nil {
		return nil, err
	}

	switch fn.text {
	case "P", "powerset":
		if err := CheckPowerset(arg, st.ev.MaxPowerset); err != nil {
			return nil, err
		}
		return arg.Powerset(), nil
	default:
		return nil, pkgerrors.Wrapf(ErrUnknownFunction, "%q", fn.text)
	}
}

// CheckPowerset fails with ErrPowersetTooLarge when s has more than limit
// elements. A limit of zero or less disables the check.
func CheckPowerset(s *nset.Set, limit int) error {
	if limit > 0 && s.Size() > limit {
		return pkgerrors.Wrapf(ErrPowersetTooLarge, "%d elements, limit is %d", s.Size(), limit)
	}
	return nil
}
