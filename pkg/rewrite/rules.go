package rewrite

// Constructors for the rewrite rules practically every saturation task
// wants. All of them are statically well-formed, so they use MustRule.

// CommutativityRule builds (op a b) -> (op b a). Note the canonicalizer
// already equates commutative operand orders for the built-in allow-list;
// an explicit rule is still needed when saturation must physically visit
// the swapped form, or for operators outside the allow-list.
func CommutativityRule(op string) *Rule {
	a, b := NewVar("a"), NewVar("b")
	return MustRule("comm-"+op, NewOp(op, a, b), NewOp(op, b, a))
}

// AssociativityRule builds ((a op b) op c) -> (a op (b op c)). The
// canonicalizer never re-associates, so merging differently nested chains
// of a commutative operator requires this rule in the saturation rule set.
func AssociativityRule(op string) *Rule {
	a, b, c := NewVar("a"), NewVar("b"), NewVar("c")
	return MustRule("assoc-"+op,
		NewOp(op, NewOp(op, a, b), c),
		NewOp(op, a, NewOp(op, b, c)))
}

// AssociativityLeftRule builds (a op (b op c)) -> ((a op b) op c), the
// mirror of AssociativityRule.
func AssociativityLeftRule(op string) *Rule {
	a, b, c := NewVar("a"), NewVar("b"), NewVar("c")
	return MustRule("assoc-left-"+op,
		NewOp(op, a, NewOp(op, b, c)),
		NewOp(op, NewOp(op, a, b), c))
}

// UnitRule builds (op x unit) -> x, eliminating a right unit element, e.g.
// UnitRule("*", 1) or UnitRule("+", 0).
func UnitRule(op string, unit interface{}) *Rule {
	x := NewVar("x")
	return MustRule("unit-"+op, NewOp(op, x, NewConst(unit)), x)
}

// DistributionRule builds (mul a (add b c)) -> (add (mul a b) (mul a c)).
func DistributionRule(mul, add string) *Rule {
	a, b, c := NewVar("a"), NewVar("b"), NewVar("c")
	return MustRule("dist-"+mul+"-"+add,
		NewOp(mul, a, NewOp(add, b, c)),
		NewOp(add, NewOp(mul, a, b), NewOp(mul, a, c)))
}

// FactorRule builds (add (mul a b) (mul a c)) -> (mul a (add b c)), the
// reverse of DistributionRule.
func FactorRule(mul, add string) *Rule {
	a, b, c := NewVar("a"), NewVar("b"), NewVar("c")
	return MustRule("factor-"+mul+"-"+add,
		NewOp(add, NewOp(mul, a, b), NewOp(mul, a, c)),
		NewOp(mul, a, NewOp(add, b, c)))
}
