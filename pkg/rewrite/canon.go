package rewrite

import (
	"fmt"
	"sort"
	"strings"
)

// CanonicalForm pairs a structurally normalized term with its signature
// string. Two terms the canonicalizer deems equal always share a signature;
// the signature is a full serialization with every name and value quoted,
// so unequal canonical terms never collide.
type CanonicalForm struct {
	Expr Expr
	Sig  string
}

// commutativeOps is the fixed allow-list of operators whose operand order
// is irrelevant. Operators absent from this set (composition, subtraction,
// division, exponentiation, application, implication) keep their argument
// order. Associativity is deliberately not handled here: re-associating
// nested applications requires an explicit rewrite rule supplied by the
// caller.
var commutativeOps = map[string]struct{}{
	"+":   {},
	"*":   {},
	"and": {},
	"or":  {},
	"∧":   {},
	"∨":   {},
	"=":   {},
}

// IsCommutative reports whether the canonicalizer treats the named operator
// as commutative.
func IsCommutative(op string) bool {
	_, ok := commutativeOps[op]
	return ok
}

// Canonicalize computes the canonical form of a term. Variables are renamed
// to _1, _2, ... in order of first appearance (pre-order, arguments left to
// right), so terms differing only by a consistent variable renaming
// canonicalize identically. Arguments of known-commutative operators are
// reordered by their signature strings so operand order becomes irrelevant;
// all other operators keep their argument order.
//
// Canonicalize is deterministic: calling it twice on the same term yields
// identical signatures and canonical terms.
func Canonicalize(term Expr) CanonicalForm {
	c := canonicalizer{names: make(map[string]string)}
	e, sig := c.canon(term)
	return CanonicalForm{Expr: e, Sig: sig}
}

// StructurallyEqual reports whether two terms are equal modulo
// alpha-renaming and commutative operand order, defined as signature
// equality of their canonical forms.
func StructurallyEqual(t1, t2 Expr) bool {
	return Canonicalize(t1).Sig == Canonicalize(t2).Sig
}

type canonicalizer struct {
	names   map[string]string
	counter int
}

// canon returns the canonical term and its signature in one pass. Alpha
// names are assigned while visiting arguments in their original order;
// commutative reordering happens only afterward, so the numbering is always
// the deterministic pre-order one.
func (c *canonicalizer) canon(e Expr) (Expr, string) {
	switch t := e.(type) {
	case *Var:
		name, ok := c.names[t.Name]
		if !ok {
			c.counter++
			name = fmt.Sprintf("_%d", c.counter)
			c.names[t.Name] = name
		}
		return &Var{Name: name}, "(var " + name + ")"

	case *Const:
		// The value's Go type participates so e.g. 1 and "1" stay
		// distinct; %#v quotes and escapes string values so a crafted
		// constant cannot spell out another term's serialization.
		return t, fmt.Sprintf("(const %T %#v)", t.Value, t.Value)

	case *Op:
		type canonArg struct {
			expr Expr
			sig  string
		}
		args := make([]canonArg, len(t.Args))
		for i, a := range t.Args {
			ce, sig := c.canon(a)
			args[i] = canonArg{expr: ce, sig: sig}
		}
		if IsCommutative(t.Name) {
			sort.SliceStable(args, func(i, j int) bool {
				return args[i].sig < args[j].sig
			})
		}

		var b strings.Builder
		b.WriteString("(op ")
		fmt.Fprintf(&b, "%q", t.Name)
		if len(t.Attrs) > 0 {
			keys := make([]string, 0, len(t.Attrs))
			for k := range t.Attrs {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			b.WriteString(" {")
			for i, k := range keys {
				if i > 0 {
					b.WriteByte(' ')
				}
				fmt.Fprintf(&b, "%q=%#v", k, t.Attrs[k])
			}
			b.WriteByte('}')
		}
		newArgs := make([]Expr, len(args))
		for i, a := range args {
			newArgs[i] = a.expr
			b.WriteByte(' ')
			b.WriteString(a.sig)
		}
		b.WriteByte(')')
		return &Op{Name: t.Name, Args: newArgs, Attrs: t.Attrs}, b.String()

	default:
		// Foreign Expr implementations are rejected at the system boundary;
		// fall back to their own rendering so the signature stays total.
		return e, "(opaque " + e.String() + ")"
	}
}
