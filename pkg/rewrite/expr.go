// Package rewrite provides a symbolic equality-saturation and term-rewriting
// engine in Go. It offers a hash-consed term representation, a canonicalizer
// that normalizes terms modulo alpha-renaming and commutativity, a pattern
// matching and substitution based rule system, a bounded saturation loop that
// explores the space of equivalent term forms, and a pluggable-cost extractor
// that selects the cheapest discovered form.
//
// The central operations are:
//   - Construction: NewVar, NewConst, NewOp build immutable terms
//   - Canonicalize: computes a canonical form and deterministic signature
//   - Rule.Apply: a single-step, outermost-first rewrite
//   - Saturate: bounded exploration of all forms reachable by rewriting
//   - ExtractBest: picks the minimum-cost form among saturation results
//
// The engine is purely synchronous and holds no global state. Interners and
// e-graphs are ordinary mutable containers owned by whichever task created
// them; they are not safe for concurrent mutation without external
// synchronization, which is the caller's responsibility.
package rewrite

import (
	"fmt"
	"sort"
	"strings"
)

// Expr represents a symbolic term: a variable, a constant, or an operator
// application. Terms are immutable values; rewriting always produces a new
// term rather than mutating in place.
//
// The three predicates IsVar, IsConst and IsOp are mutually exclusive and
// exhaustive over the concrete types *Var, *Const and *Op.
type Expr interface {
	// String returns a human-readable representation of the term.
	String() string

	// Equal checks if this term is structurally equal to another term.
	Equal(other Expr) bool

	// IsVar returns true if this term is a variable.
	IsVar() bool

	// IsConst returns true if this term is a constant.
	IsConst() bool

	// IsOp returns true if this term is an operator application.
	IsOp() bool
}

// Var represents a named variable. In a concrete term a Var is an object
// variable; in a rule pattern a Var acts as a unification placeholder that
// matches any subterm.
type Var struct {
	Name string
}

// NewVar creates a new variable term with the given name.
func NewVar(name string) *Var {
	return &Var{Name: name}
}

// String returns the variable's name.
func (v *Var) String() string {
	return v.Name
}

// Equal checks if two variables carry the same name.
func (v *Var) Equal(other Expr) bool {
	if o, ok := other.(*Var); ok {
		return v.Name == o.Name
	}
	return false
}

// IsVar always returns true for variables.
func (v *Var) IsVar() bool { return true }

// IsConst always returns false for variables.
func (v *Var) IsConst() bool { return false }

// IsOp always returns false for variables.
func (v *Var) IsOp() bool { return false }

// Const represents an atomic constant value (number, string, boolean).
// The value must be comparable with ==.
type Const struct {
	Value interface{}
}

// NewConst creates a new constant term from any comparable Go value.
func NewConst(value interface{}) *Const {
	return &Const{Value: value}
}

// String returns a string representation of the constant's value.
func (c *Const) String() string {
	return fmt.Sprintf("%v", c.Value)
}

// Equal checks if two constants hold the same value.
func (c *Const) Equal(other Expr) bool {
	if o, ok := other.(*Const); ok {
		return c.Value == o.Value
	}
	return false
}

// IsVar always returns false for constants.
func (c *Const) IsVar() bool { return false }

// IsConst always returns true for constants.
func (c *Const) IsConst() bool { return true }

// IsOp always returns false for constants.
func (c *Const) IsOp() bool { return false }

// Op represents an operator applied to an ordered sequence of argument
// terms, with an optional attribute map. Argument order is significant;
// whether an operator is commutative is decided by the canonicalizer's
// allow-list, never by the term itself.
type Op struct {
	Name  string
	Args  []Expr
	Attrs map[string]interface{}
}

// NewOp creates a new operator application term.
func NewOp(name string, args ...Expr) *Op {
	return &Op{Name: name, Args: args}
}

// NewOpAttrs creates a new operator application term carrying attributes.
func NewOpAttrs(name string, args []Expr, attrs map[string]interface{}) *Op {
	return &Op{Name: name, Args: args, Attrs: attrs}
}

// String returns a parenthesized prefix representation, e.g. (+ x y).
func (op *Op) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(op.Name)
	for _, a := range op.Args {
		b.WriteByte(' ')
		b.WriteString(a.String())
	}
	if len(op.Attrs) > 0 {
		keys := make([]string, 0, len(op.Attrs))
		for k := range op.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, op.Attrs[k])
		}
	}
	b.WriteByte(')')
	return b.String()
}

// Equal checks if two operator applications are structurally equal:
// same operator name, same arity, pairwise equal arguments, and equal
// attribute maps.
func (op *Op) Equal(other Expr) bool {
	o, ok := other.(*Op)
	if !ok {
		return false
	}
	if op.Name != o.Name || len(op.Args) != len(o.Args) {
		return false
	}
	for i, a := range op.Args {
		if !a.Equal(o.Args[i]) {
			return false
		}
	}
	if len(op.Attrs) != len(o.Attrs) {
		return false
	}
	for k, v := range op.Attrs {
		ov, present := o.Attrs[k]
		if !present || v != ov {
			return false
		}
	}
	return true
}

// IsVar always returns false for operator applications.
func (op *Op) IsVar() bool { return false }

// IsConst always returns false for operator applications.
func (op *Op) IsConst() bool { return false }

// IsOp always returns true for operator applications.
func (op *Op) IsOp() bool { return true }
