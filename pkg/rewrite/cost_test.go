package rewrite

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostNodes(t *testing.T) {
	assert.Equal(t, 1, CostNodes(NewVar("x")))
	assert.Equal(t, 1, CostNodes(NewConst(42)))
	// (+ (* x 2) y): three leaves, two operators.
	term := NewOp("+", NewOp("*", NewVar("x"), NewConst(2)), NewVar("y"))
	assert.Equal(t, 5, CostNodes(term))
}

func TestCostWeighted(t *testing.T) {
	term := NewOp("+", NewOp("*", NewVar("x"), NewConst(2)), NewVar("y"))

	t.Run("missing weights default to one", func(t *testing.T) {
		cost := CostWeighted(nil)
		assert.Equal(t, CostNodes(term), cost(term))
	})

	t.Run("operator weights bias the total", func(t *testing.T) {
		cost := CostWeighted(map[string]int{"*": 10})
		// 10 for *, 1 for +, 1 per leaf.
		assert.Equal(t, 14, cost(term))
	})

	t.Run("leaf weight is configurable", func(t *testing.T) {
		cost := CostWeighted(map[string]int{LeafWeightKey: 0})
		assert.Equal(t, 2, cost(term))
	})
}

func TestExtractBest(t *testing.T) {
	t.Run("picks the strictly cheapest term", func(t *testing.T) {
		terms := []Expr{
			NewOp("+", NewVar("x"), NewConst(0)),
			NewVar("x"),
			NewOp("*", NewVar("x"), NewConst(1)),
		}
		best, err := ExtractBest(terms, CostNodes)
		require.NoError(t, err)
		assert.True(t, best.Equal(NewVar("x")))
	})

	t.Run("first seen wins ties", func(t *testing.T) {
		first := NewVar("a")
		terms := []Expr{first, NewVar("b"), NewVar("c")}
		best, err := ExtractBest(terms, CostNodes)
		require.NoError(t, err)
		assert.Same(t, Expr(first), best)
	})

	t.Run("nil cost defaults to node count", func(t *testing.T) {
		best, err := ExtractBest([]Expr{NewOp("f", NewVar("x")), NewConst(1)}, nil)
		require.NoError(t, err)
		assert.True(t, best.Equal(NewConst(1)))
	})

	t.Run("empty candidate set fails", func(t *testing.T) {
		_, err := ExtractBest(nil, CostNodes)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEmptyCandidateSet))
	})
}

func TestCostDrivenSelection(t *testing.T) {
	// Distributing x*(y+z) trades one extra multiplication and leaf for
	// nothing the plain node count rewards, so selecting the distributed
	// form takes a weighting that actively rewards multiplications.
	term := NewOp("*", NewVar("x"), NewOp("+", NewVar("y"), NewVar("z")))
	results := Saturate(term, []*Rule{DistributionRule("*", "+")})
	require.Len(t, results, 2)

	preferMul := CostWeighted(map[string]int{"*": -1, "+": 5, LeafWeightKey: 0})
	preferAdd := CostWeighted(map[string]int{"*": 5, "+": -1, LeafWeightKey: 0})

	distributed, err := ExtractBest(results, preferMul)
	require.NoError(t, err)
	factored, err := ExtractBest(results, preferAdd)
	require.NoError(t, err)

	assert.NotEqual(t, Canonicalize(distributed).Sig, Canonicalize(factored).Sig)
	assert.Equal(t, "+", distributed.(*Op).Name)
	assert.Equal(t, "*", factored.(*Op).Name)
}
