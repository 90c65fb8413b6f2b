package rewrite

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRule(t *testing.T) {
	t.Run("accepts rules whose rhs variables are bound by the lhs", func(t *testing.T) {
		r, err := NewRule("mul-unit", NewOp("*", NewVar("x"), NewConst(1)), NewVar("x"))
		require.NoError(t, err)
		assert.Equal(t, "mul-unit", r.Name)
	})

	t.Run("rejects a free rhs variable", func(t *testing.T) {
		_, err := NewRule("bad", NewOp("*", NewVar("x"), NewConst(1)), NewVar("y"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnboundPatternVariable))
	})
}

func TestRuleApply(t *testing.T) {
	mulUnit := MustRule("mul-unit", NewOp("*", NewVar("x"), NewConst(1)), NewVar("x"))

	t.Run("rewrites at the root when it matches", func(t *testing.T) {
		changed, out := mulUnit.Apply(NewOp("*", NewVar("a"), NewConst(1)))
		assert.True(t, changed)
		assert.True(t, out.Equal(NewVar("a")))
	})

	t.Run("rewrites the outermost matching site", func(t *testing.T) {
		// Both the whole term and its first argument match; the root wins.
		inner := NewOp("*", NewVar("a"), NewConst(1))
		term := NewOp("*", inner, NewConst(1))

		changed, out := mulUnit.Apply(term)
		assert.True(t, changed)
		assert.True(t, out.Equal(inner))
	})

	t.Run("descends into arguments left to right", func(t *testing.T) {
		left := NewOp("*", NewVar("a"), NewConst(1))
		right := NewOp("*", NewVar("b"), NewConst(1))
		term := NewOp("+", left, right)

		changed, out := mulUnit.Apply(term)
		assert.True(t, changed)
		// Only the leftmost site fires; the right one is left for a later
		// application by the saturation loop.
		assert.True(t, out.Equal(NewOp("+", NewVar("a"), right)))

		changed, out = mulUnit.Apply(out)
		assert.True(t, changed)
		assert.True(t, out.Equal(NewOp("+", NewVar("a"), NewVar("b"))))
	})

	t.Run("returns the term unchanged when nothing matches", func(t *testing.T) {
		term := NewOp("+", NewVar("a"), NewVar("b"))
		changed, out := mulUnit.Apply(term)
		assert.False(t, changed)
		assert.True(t, out.Equal(term))
	})

	t.Run("untouched siblings are shared, not copied", func(t *testing.T) {
		sibling := NewOp("f", NewVar("k"))
		term := NewOp("+", sibling, NewOp("*", NewVar("a"), NewConst(1)))

		changed, out := mulUnit.Apply(term)
		require.True(t, changed)
		assert.Same(t, sibling, out.(*Op).Args[0])
	})

	t.Run("attributes survive spine rebuilding", func(t *testing.T) {
		attrs := map[string]interface{}{"span": "1:4"}
		term := NewOpAttrs("+", []Expr{NewOp("*", NewVar("a"), NewConst(1)), NewVar("b")}, attrs)

		changed, out := mulUnit.Apply(term)
		require.True(t, changed)
		assert.Equal(t, attrs, out.(*Op).Attrs)
	})

	t.Run("handles deeply nested terms without recursion", func(t *testing.T) {
		// A chain of 100000 unary wrappers around the redex would overflow
		// a naive recursive descent.
		const depth = 100000
		term := Expr(NewOp("*", NewVar("a"), NewConst(1)))
		for i := 0; i < depth; i++ {
			term = NewOp("neg", term)
		}

		changed, out := mulUnit.Apply(term)
		require.True(t, changed)

		// Unwrap iteratively and check the rewrite landed at the bottom.
		for i := 0; i < depth; i++ {
			op, ok := out.(*Op)
			require.True(t, ok)
			require.Equal(t, "neg", op.Name)
			out = op.Args[0]
		}
		assert.True(t, out.Equal(NewVar("a")))
	})
}
