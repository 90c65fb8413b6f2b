package rewrite

import "github.com/pkg/errors"

// Bindings maps pattern-variable names to the concrete subterms they
// matched. Bindings are linear with first-bind-wins semantics: a pattern
// variable bound twice must match a structurally equal subterm both times.
type Bindings map[string]Expr

// Clone creates a shallow copy of the binding environment. Bound terms are
// immutable, so sharing them between environments is safe.
func (b Bindings) Clone() Bindings {
	out := make(Bindings, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Match structurally unifies term against pattern, where Var nodes in the
// pattern act as placeholders. On success it returns the binding
// environment; on failure it returns (nil, false). A failed match is an
// expected outcome, not an error.
//
// Matching rules:
//   - Pattern Var: binds the variable to term if unbound; if already bound,
//     succeeds only if the existing binding is structurally equal to term.
//   - Pattern Const: succeeds iff term is a Const with an equal value.
//   - Pattern Op: succeeds iff term is an Op with the same operator name and
//     arity, matching arguments pairwise left to right; later arguments see
//     bindings established by earlier ones.
//
// Example:
//
//	env, ok := Match(NewOp("+", NewConst(1), NewConst(2)), NewOp("+", NewVar("a"), NewVar("b")))
//	// ok == true, env["a"] == 1, env["b"] == 2
func Match(term, pattern Expr) (Bindings, bool) {
	return MatchWith(term, pattern, nil)
}

// MatchWith is Match with a pre-seeded binding environment. The given
// environment is not modified; the returned environment extends it. Passing
// nil starts from an empty environment.
func MatchWith(term, pattern Expr, env Bindings) (Bindings, bool) {
	out := env.Clone()
	if matchInto(term, pattern, out) {
		return out, true
	}
	return nil, false
}

// matchInto threads a single mutable environment through the recursion.
// Callers must discard the environment when matching fails, since it may
// hold bindings from already-matched siblings.
func matchInto(term, pattern Expr, env Bindings) bool {
	switch p := pattern.(type) {
	case *Var:
		if bound, ok := env[p.Name]; ok {
			return bound.Equal(term)
		}
		env[p.Name] = term
		return true

	case *Const:
		return p.Equal(term)

	case *Op:
		t, ok := term.(*Op)
		if !ok || t.Name != p.Name || len(t.Args) != len(p.Args) {
			return false
		}
		for i, pa := range p.Args {
			if !matchInto(t.Args[i], pa, env) {
				return false
			}
		}
		return true

	default:
		return false
	}
}

// Substitute builds a concrete term from a pattern and a binding
// environment: every pattern Var is replaced by its bound value, Const
// nodes pass through unchanged, and Op nodes are rebuilt recursively.
//
// It fails with ErrUnboundPatternVariable when the pattern names a variable
// absent from the environment, and with ErrInvalidPattern when the pattern
// is not a Var, Const or Op. Both signal rule-authoring bugs.
func Substitute(pattern Expr, env Bindings) (Expr, error) {
	switch p := pattern.(type) {
	case *Var:
		bound, ok := env[p.Name]
		if !ok {
			return nil, errors.Wrapf(ErrUnboundPatternVariable, "variable %q", p.Name)
		}
		return bound, nil

	case *Const:
		return p, nil

	case *Op:
		args := make([]Expr, len(p.Args))
		for i, pa := range p.Args {
			a, err := Substitute(pa, env)
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		return &Op{Name: p.Name, Args: args, Attrs: p.Attrs}, nil

	default:
		return nil, errors.Wrapf(ErrInvalidPattern, "unexpected pattern type %T", pattern)
	}
}
