package rewrite

import "github.com/pkg/errors"

// Rule is a named rewrite rule: a left-hand pattern matched against
// subterms and a right-hand pattern instantiated from the resulting
// bindings. Var nodes in both patterns are unification placeholders, not
// object variables.
type Rule struct {
	Name string
	LHS  Expr
	RHS  Expr
}

// NewRule creates a rewrite rule, validating that every pattern variable
// the right-hand side references is bound by the left-hand side. Catching
// an unbindable right-hand variable here means Apply can never trip over
// it mid-rewrite.
func NewRule(name string, lhs, rhs Expr) (*Rule, error) {
	bound := map[string]struct{}{}
	collectPatternVars(lhs, bound)

	free := map[string]struct{}{}
	collectPatternVars(rhs, free)
	for v := range free {
		if _, ok := bound[v]; !ok {
			return nil, errors.Wrapf(ErrUnboundPatternVariable,
				"rule %q: right-hand side references %q", name, v)
		}
	}
	return &Rule{Name: name, LHS: lhs, RHS: rhs}, nil
}

// MustRule is like NewRule but panics on an invalid rule. Intended for
// statically known rules such as the constructors in rules.go.
func MustRule(name string, lhs, rhs Expr) *Rule {
	r, err := NewRule(name, lhs, rhs)
	if err != nil {
		panic(err)
	}
	return r
}

func collectPatternVars(pattern Expr, into map[string]struct{}) {
	switch p := pattern.(type) {
	case *Var:
		into[p.Name] = struct{}{}
	case *Op:
		for _, a := range p.Args {
			collectPatternVars(a, into)
		}
	}
}

// applyFrame records one visited node during Apply's traversal, with a link
// to its parent so the rewritten spine can be reassembled without recursion.
type applyFrame struct {
	expr   Expr
	parent int // index into the frame slice, -1 for the root
	argIdx int // position within the parent's argument list
}

// Apply performs a single-step, outermost-first rewrite: the first subterm
// in pre-order (the term itself, then the first argument's subtree, and so
// on left to right) whose shape matches the rule's left-hand side is
// replaced by the instantiated right-hand side, and the spine above it is
// rebuilt. At most one rewrite site fires per call.
//
// It returns (true, rewritten) when a site matched and (false, term)
// unchanged otherwise; it never returns an error. Repeated and alternative
// rewrites come from the saturation engine invoking Apply across many rules
// and iterations, not from Apply exhausting all sites itself.
//
// The traversal uses an explicit work stack, so deeply nested terms do not
// grow the Go call stack.
func (r *Rule) Apply(term Expr) (bool, Expr) {
	frames := []applyFrame{{expr: term, parent: -1}}
	stack := []int{0}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cur := frames[i].expr

		if env, ok := Match(cur, r.LHS); ok {
			replacement, err := Substitute(r.RHS, env)
			if err != nil {
				// NewRule validation makes this unreachable for
				// well-formed rules; treat a hand-built bad rule
				// as a non-match rather than corrupting the term.
				return false, term
			}
			return true, rebuildSpine(frames, i, replacement)
		}

		if op, ok := cur.(*Op); ok {
			// Push arguments right to left so the leftmost subtree
			// is fully explored first.
			for j := len(op.Args) - 1; j >= 0; j-- {
				frames = append(frames, applyFrame{expr: op.Args[j], parent: i, argIdx: j})
				stack = append(stack, len(frames)-1)
			}
		}
	}
	return false, term
}

// rebuildSpine replaces the term at frame i with replacement and rebuilds
// every ancestor Op along the parent chain, sharing all untouched siblings.
func rebuildSpine(frames []applyFrame, i int, replacement Expr) Expr {
	out := replacement
	for frames[i].parent != -1 {
		p := frames[i].parent
		op := frames[p].expr.(*Op)
		args := make([]Expr, len(op.Args))
		copy(args, op.Args)
		args[frames[i].argIdx] = out
		out = &Op{Name: op.Name, Args: args, Attrs: op.Attrs}
		i = p
	}
	return out
}
