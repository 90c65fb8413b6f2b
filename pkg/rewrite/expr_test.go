package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPredicates checks that the three classifiers are mutually exclusive
// and exhaustive over the term union.
func TestPredicates(t *testing.T) {
	cases := []struct {
		name    string
		term    Expr
		isVar   bool
		isConst bool
		isOp    bool
	}{
		{"variable", NewVar("x"), true, false, false},
		{"constant", NewConst(42), false, true, false},
		{"operator", NewOp("+", NewVar("x"), NewConst(1)), false, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.isVar, tc.term.IsVar())
			assert.Equal(t, tc.isConst, tc.term.IsConst())
			assert.Equal(t, tc.isOp, tc.term.IsOp())
		})
	}
}

func TestStructuralEquality(t *testing.T) {
	t.Run("variables compare by name", func(t *testing.T) {
		assert.True(t, NewVar("x").Equal(NewVar("x")))
		assert.False(t, NewVar("x").Equal(NewVar("y")))
		assert.False(t, NewVar("x").Equal(NewConst("x")))
	})

	t.Run("constants compare by value", func(t *testing.T) {
		assert.True(t, NewConst(3).Equal(NewConst(3)))
		assert.False(t, NewConst(3).Equal(NewConst(4)))
		// Same rendering, different type.
		assert.False(t, NewConst(1).Equal(NewConst("1")))
	})

	t.Run("operators compare name, arity and arguments", func(t *testing.T) {
		ab := NewOp("+", NewVar("a"), NewVar("b"))
		assert.True(t, ab.Equal(NewOp("+", NewVar("a"), NewVar("b"))))
		assert.False(t, ab.Equal(NewOp("*", NewVar("a"), NewVar("b"))))
		assert.False(t, ab.Equal(NewOp("+", NewVar("b"), NewVar("a"))))
		assert.False(t, ab.Equal(NewOp("+", NewVar("a"))))
	})

	t.Run("attributes participate in equality", func(t *testing.T) {
		plain := NewOp("node", NewVar("x"))
		tagged := NewOpAttrs("node", []Expr{NewVar("x")}, map[string]interface{}{"kind": "leaf"})
		other := NewOpAttrs("node", []Expr{NewVar("x")}, map[string]interface{}{"kind": "root"})

		assert.False(t, plain.Equal(tagged))
		assert.False(t, tagged.Equal(other))
		assert.True(t, tagged.Equal(NewOpAttrs("node", []Expr{NewVar("x")}, map[string]interface{}{"kind": "leaf"})))
	})
}

func TestExprString(t *testing.T) {
	term := NewOp("+", NewOp("*", NewVar("x"), NewConst(2)), NewVar("y"))
	require.Equal(t, "(+ (* x 2) y)", term.String())

	tagged := NewOpAttrs("f", []Expr{NewVar("x")}, map[string]interface{}{"b": 2, "a": 1})
	// Attribute keys render in sorted order so the output is stable.
	require.Equal(t, "(f x a=1 b=2)", tagged.String())
}
