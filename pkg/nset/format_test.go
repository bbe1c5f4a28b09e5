package nset

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_RoundTrip(t *testing.T) {
	inputs := []string{
		"{}",
		"{1,2,3,4}",
		"{ 1 , {2,{3, {}}} ,-4 }",
		"{1,1,{2,1},{1,2}}",
		operandA,
		operandB,
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first := MustParse(in)
			second, err := Parse(first.String())
			require.NoError(t, err)
			assert.True(t, first.Equal(second))
			assert.Equal(t, first.String(), second.String())
		})
	}

	rnd := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 100; i++ {
		s := randomSet(rnd, 4)
		back, err := Parse(s.String())
		require.NoError(t, err)
		require.True(t, s.Equal(back), "round trip of %s", s)
	}
}

func TestFormat_TextMarshaling(t *testing.T) {
	s := MustParse("{1, {2}}")

	text, err := s.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "{1, {2}}", string(text))

	b, err := s.AppendText([]byte("s="))
	require.NoError(t, err)
	assert.Equal(t, "s={1, {2}}", string(b))

	var decoded Set
	require.NoError(t, decoded.UnmarshalText([]byte("{{2},1,1}")))
	assert.True(t, decoded.Equal(s))
	assert.True(t, decoded.ContainsInt(1))

	before := decoded.String()
	require.ErrorIs(t, decoded.UnmarshalText([]byte("{1,")), ErrParse)
	assert.Equal(t, before, decoded.String())
}

func TestFormat_JSONUsesGrammar(t *testing.T) {
	doc := struct {
		Sets map[string]*Set `json:"sets"`
	}{}
	require.NoError(t, json.Unmarshal([]byte(`{"sets":{"a":"{1, {2}}"}}`), &doc))
	require.Contains(t, doc.Sets, "a")
	assert.Equal(t, 2, doc.Sets["a"].Size())

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sets":{"a":"{1, {2}}"}}`, string(out))
}
