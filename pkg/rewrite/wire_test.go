package rewrite

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTerm(t *testing.T) {
	t.Run("variable record", func(t *testing.T) {
		e, err := DecodeTerm([]byte(`{"var": "x"}`))
		require.NoError(t, err)
		assert.True(t, e.Equal(NewVar("x")))
	})

	t.Run("constant record", func(t *testing.T) {
		e, err := DecodeTerm([]byte(`{"const": 3}`))
		require.NoError(t, err)
		assert.True(t, e.Equal(NewConst(3.0)))
	})

	t.Run("operator record with nested arguments", func(t *testing.T) {
		data := []byte(`{"op": "+", "args": [{"var": "x"}, {"const": 1}], "attrs": {"src": "demo"}}`)
		e, err := DecodeTerm(data)
		require.NoError(t, err)

		op, ok := e.(*Op)
		require.True(t, ok)
		assert.Equal(t, "+", op.Name)
		require.Len(t, op.Args, 2)
		assert.True(t, op.Args[0].Equal(NewVar("x")))
		assert.Equal(t, map[string]interface{}{"src": "demo"}, op.Attrs)
	})

	t.Run("operator without args decodes as nullary", func(t *testing.T) {
		e, err := DecodeTerm([]byte(`{"op": "nil"}`))
		require.NoError(t, err)
		assert.Len(t, e.(*Op).Args, 0)
	})

	malformed := []struct {
		name string
		data string
	}{
		{"not an object", `[1, 2]`},
		{"no tags", `{"value": 3}`},
		{"two tags", `{"var": "x", "const": 1}`},
		{"var not a string", `{"var": 3}`},
		{"var with extra keys", `{"var": "x", "extra": 1}`},
		{"const with structured value", `{"const": {"k": 1}}`},
		{"op with non-array args", `{"op": "+", "args": 3}`},
		{"op with structured attr value", `{"op": "+", "args": [], "attrs": {"k": [1]}}`},
		{"op with unknown key", `{"op": "+", "args": [], "children": []}`},
		{"malformed nested argument", `{"op": "+", "args": [{"bad": 1}]}`},
		{"invalid json", `{"op": `},
	}
	for _, tc := range malformed {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			_, err := DecodeTerm([]byte(tc.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedTerm))
		})
	}
}

func TestEncodeTermRoundTrip(t *testing.T) {
	term := NewOp("+",
		NewOp("*", NewVar("x"), NewConst(2.0)),
		NewOpAttrs("f", []Expr{NewVar("y")}, map[string]interface{}{"kind": "call"}),
	)

	data, err := EncodeTerm(term)
	require.NoError(t, err)

	back, err := DecodeTerm(data)
	require.NoError(t, err)
	assert.True(t, term.Equal(back))
}

func TestDecodeRules(t *testing.T) {
	t.Run("valid rule set", func(t *testing.T) {
		data := []byte(`[
			{"name": "mul-unit",
			 "lhs": {"op": "*", "args": [{"var": "x"}, {"const": 1}]},
			 "rhs": {"var": "x"}}
		]`)
		rules, err := DecodeRules(data)
		require.NoError(t, err)
		require.Len(t, rules, 1)

		changed, out := rules[0].Apply(NewOp("*", NewVar("a"), NewConst(1.0)))
		assert.True(t, changed)
		assert.True(t, out.Equal(NewVar("a")))
	})

	t.Run("rejects a rule with an unbound rhs variable", func(t *testing.T) {
		data := []byte(`{"name": "bad", "lhs": {"var": "x"}, "rhs": {"var": "y"}}`)
		_, err := DecodeRule(data)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnboundPatternVariable))
	})

	t.Run("rejects a nameless rule", func(t *testing.T) {
		data := []byte(`{"lhs": {"var": "x"}, "rhs": {"var": "x"}}`)
		_, err := DecodeRule(data)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedTerm))
	})
}
