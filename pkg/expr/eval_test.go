package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestedset/pkg/nset"
)

func testEnv() MapEnv {
	return MapEnv{
		"A": nset.MustParse("{1,2,3,{1,2},{1},{}}"),
		"B": nset.MustParse("{1,2,3,4,{1,2,3},{2},{}}"),
		"S": nset.MustParse("{1,2,{1}}"),
	}
}

func TestEval_Sets(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "union", input: "A + B", want: "{1,2,3,4,{1,2,3},{1,2},{1},{2},{}}"},
		{name: "intersection", input: "A * B", want: "{1,2,3,{}}"},
		{name: "difference", input: "A - B", want: "{{1,2},{1}}"},
		{name: "precedence", input: "{1} + {2,3} * {3}", want: "{1,3}"},
		{name: "parentheses", input: "({1} + {2,3}) * {3}", want: "{3}"},
		{name: "left associative", input: "{1,2,3} - {1} - {2}", want: "{3}"},
		{name: "literal only", input: " { 1 , {2} } ", want: "{1,{2}}"},
		{name: "powerset", input: "P({1,2})", want: "{{},{1},{2},{1,2}}"},
		{name: "powerset long name", input: "powerset(S) - P({1,2})", want: "{{{1}},{1,{1}},{2,{1}},{1,2,{1}}}"},
		{name: "nested calls", input: "P(P({}))", want: "{{},{{}}}"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ev := &Evaluator{Env: testEnv()}
			res, err := ev.Eval(tc.input)
			require.NoError(t, err)
			require.False(t, res.IsBool)
			assert.True(t, res.Set.Equal(nset.MustParse(tc.want)), "got %s, want %s", res, tc.want)
		})
	}
}

func TestEval_Predicates(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "A + A == A", want: true},
		{input: "A * B == {1,2,3,{}}", want: true},
		{input: "A - A != {}", want: false},
		{input: "A + B == B + A", want: true},
		{input: "{1} in A", want: true},
		{input: "{3} in A", want: false},
		{input: "{2,1} in A", want: true},
		{input: "1 in A", want: true},
		{input: "4 in A", want: false},
		{input: "-1 in {-1}", want: true},
		{input: "A * B <= A", want: true},
		{input: "B <= A", want: false},
		{input: "{1} in P(S)", want: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			ev := &Evaluator{Env: testEnv()}
			res, err := ev.Eval(tc.input)
			require.NoError(t, err)
			require.True(t, res.IsBool)
			assert.Equal(t, tc.want, res.Bool)
		})
	}
}

func TestEval_Assignment(t *testing.T) {
	env := testEnv()
	ev := &Evaluator{Env: env}

	res, err := ev.Eval("C = A * B")
	require.NoError(t, err)
	assert.Equal(t, 4, res.Set.Size())
	require.Contains(t, env, "C")

	res, err = ev.Eval("C == {{}, 3, 2, 1}")
	require.NoError(t, err)
	assert.Equal(t, "true", res.String())

	_, err = (&Evaluator{Env: readOnlyEnv{}}).Eval("X = {}")
	assert.ErrorIs(t, err, ErrReadOnlyEnv)
}

func TestEval_DoesNotModifyNamedSets(t *testing.T) {
	env := testEnv()
	before := env["A"].String()
	ev := &Evaluator{Env: env}

	_, err := ev.Eval("A - A")
	require.NoError(t, err)
	_, err = ev.Eval("A * {1}")
	require.NoError(t, err)

	assert.Equal(t, before, env["A"].String())
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
		offset int
	}{
		{name: "unknown set", input: "A + Z", target: ErrUnknownSet},
		{name: "unknown function", input: "Q(A)", target: ErrUnknownFunction},
		{name: "powerset limit", input: "P({1,2,3,4})", target: ErrPowersetTooLarge},
		{name: "bad literal", input: "A + {1 2}", offset: 7},
		{name: "unterminated literal", input: "{1, {2}", offset: 7},
		{name: "missing paren", input: "(A + B", offset: 6},
		{name: "dangling operator", input: "A +", offset: 3},
		{name: "stray token", input: "A B", offset: 2},
		{name: "unknown character", input: "A & B", offset: 2},
		{name: "non-ascii character", input: "A · B", offset: 2},
		{name: "integer without in", input: "1 + A", offset: 2},
		{name: "negative out of range", input: "  -99999999999999999999 in A", offset: 2},
		{name: "positive out of range", input: "99999999999999999999 in A", offset: 0},
		{name: "empty", input: "", offset: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ev := &Evaluator{Env: testEnv(), MaxPowerset: 3}
			_, err := ev.Eval(tc.input)
			require.Error(t, err)
			if tc.target != nil {
				assert.ErrorIs(t, err, tc.target)
				return
			}
			var serr *SyntaxError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tc.offset, serr.Offset, serr.Error())
		})
	}
}

func TestCheckPowerset(t *testing.T) {
	s := nset.New(1, 2, 3)
	assert.NoError(t, CheckPowerset(s, 3))
	assert.NoError(t, CheckPowerset(s, 0), "zero disables the limit")
	assert.NoError(t, CheckPowerset(s, -1), "negative disables the limit")
	assert.ErrorIs(t, CheckPowerset(s, 2), ErrPowersetTooLarge)

	ev := &Evaluator{MaxPowerset: -1}
	res, err := ev.Eval("P({1,2,3,4})")
	require.NoError(t, err)
	assert.Equal(t, 16, res.Set.Size())
}

func TestEval_UsesParserLimits(t *testing.T) {
	ev := &Evaluator{Parser: &nset.Parser{MaxDepth: 1}}
	_, err := ev.Eval("{{}}")
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 1, serr.Offset)
}

type readOnlyEnv struct{}

func (readOnlyEnv) Lookup(string) (*nset.Set, bool) { return nil, false }
