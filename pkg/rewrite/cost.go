package rewrite

// CostFunc assigns a cost to a term. Lower is better. Cost functions are
// pure and see whole terms, so callers can weigh operators, penalize depth,
// or encode any other notion of "quality".
type CostFunc func(Expr) int

// LeafWeightKey is the reserved key in a CostWeighted weight map that sets
// the cost of leaves (variables and constants). Absent entries default to 1.
const LeafWeightKey = "leaf"

// CostNodes counts nodes: 1 per leaf, 1 plus the argument costs per
// operator application. It is the default cost for ExtractBest.
func CostNodes(e Expr) int {
	op, ok := e.(*Op)
	if !ok {
		return 1
	}
	total := 1
	for _, a := range op.Args {
		total += CostNodes(a)
	}
	return total
}

// CostWeighted builds a cost function with caller-supplied per-operator
// weights. An operator absent from the map weighs 1; leaves weigh the
// LeafWeightKey entry, default 1. Negative weights are permitted and make
// forms using more of an operator cheaper, which is how a caller biases
// extraction toward a particular shape.
//
// Example:
//
//	cheapMul := CostWeighted(map[string]int{"*": -1, "+": 5, LeafWeightKey: 0})
func CostWeighted(weights map[string]int) CostFunc {
	leaf := 1
	if w, ok := weights[LeafWeightKey]; ok {
		leaf = w
	}
	var cost CostFunc
	cost = func(e Expr) int {
		op, ok := e.(*Op)
		if !ok {
			return leaf
		}
		w, ok := weights[op.Name]
		if !ok {
			w = 1
		}
		total := w
		for _, a := range op.Args {
			total += cost(a)
		}
		return total
	}
	return cost
}

// ExtractBest scans candidate terms and returns the one with the strictly
// lowest cost; the first seen wins ties. A nil cost function defaults to
// CostNodes. It fails with ErrEmptyCandidateSet when given no candidates,
// which signals a caller bug rather than a recoverable condition.
func ExtractBest(terms []Expr, cost CostFunc) (Expr, error) {
	if len(terms) == 0 {
		return nil, ErrEmptyCandidateSet
	}
	if cost == nil {
		cost = CostNodes
	}
	best := terms[0]
	bestCost := cost(best)
	for _, t := range terms[1:] {
		if c := cost(t); c < bestCost {
			best, bestCost = t, c
		}
	}
	return best, nil
}
