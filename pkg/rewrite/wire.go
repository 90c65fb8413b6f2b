package rewrite

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Wire format: terms travel as JSON tagged records, mirroring the tagged
// union exactly.
//
//	{"var": "x"}
//	{"const": 3}
//	{"op": "+", "args": [...], "attrs": {"k": "v"}}
//
// Malformed shapes are rejected here, at the system boundary, so the
// algorithms never see a term that is not a Var, Const or Op.

// DecodeTerm parses a JSON-encoded term. It fails with ErrMalformedTerm
// (wrapped with positional context) when the document is not a valid
// tagged record.
func DecodeTerm(data []byte) (Expr, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(ErrMalformedTerm, err.Error())
	}
	return decodeWire(raw)
}

func decodeWire(raw interface{}) (Expr, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errors.Wrapf(ErrMalformedTerm, "expected object, got %T", raw)
	}

	_, hasVar := obj["var"]
	_, hasConst := obj["const"]
	_, hasOp := obj["op"]
	tags := 0
	for _, present := range []bool{hasVar, hasConst, hasOp} {
		if present {
			tags++
		}
	}
	if tags != 1 {
		return nil, errors.Wrapf(ErrMalformedTerm, "expected exactly one of var/const/op tags, got %d", tags)
	}

	switch {
	case hasVar:
		name, ok := obj["var"].(string)
		if !ok || name == "" {
			return nil, errors.Wrap(ErrMalformedTerm, "var tag must be a non-empty string")
		}
		if len(obj) != 1 {
			return nil, errors.Wrap(ErrMalformedTerm, "var record carries extra keys")
		}
		return NewVar(name), nil

	case hasConst:
		switch obj["const"].(type) {
		case nil, bool, float64, string:
		default:
			return nil, errors.Wrapf(ErrMalformedTerm, "const value must be a scalar, got %T", obj["const"])
		}
		if len(obj) != 1 {
			return nil, errors.Wrap(ErrMalformedTerm, "const record carries extra keys")
		}
		return NewConst(obj["const"]), nil

	default:
		name, ok := obj["op"].(string)
		if !ok || name == "" {
			return nil, errors.Wrap(ErrMalformedTerm, "op tag must be a non-empty string")
		}
		for k := range obj {
			if k != "op" && k != "args" && k != "attrs" {
				return nil, errors.Wrapf(ErrMalformedTerm, "unexpected key %q in op record", k)
			}
		}

		var args []Expr
		if rawArgs, present := obj["args"]; present {
			list, ok := rawArgs.([]interface{})
			if !ok {
				return nil, errors.Wrapf(ErrMalformedTerm, "args of %q must be an array", name)
			}
			args = make([]Expr, len(list))
			for i, item := range list {
				a, err := decodeWire(item)
				if err != nil {
					return nil, errors.Wrapf(err, "argument %d of %q", i, name)
				}
				args[i] = a
			}
		}

		var attrs map[string]interface{}
		if rawAttrs, present := obj["attrs"]; present {
			attrs, ok = rawAttrs.(map[string]interface{})
			if !ok {
				return nil, errors.Wrapf(ErrMalformedTerm, "attrs of %q must be an object", name)
			}
			for k, v := range attrs {
				switch v.(type) {
				case nil, bool, float64, string:
				default:
					return nil, errors.Wrapf(ErrMalformedTerm, "attr %q of %q must be a scalar, got %T", k, name, v)
				}
			}
		}
		return &Op{Name: name, Args: args, Attrs: attrs}, nil
	}
}

// EncodeTerm serializes a term into the JSON wire format.
func EncodeTerm(e Expr) ([]byte, error) {
	wire, err := termToWire(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wire)
}

func termToWire(e Expr) (interface{}, error) {
	switch t := e.(type) {
	case *Var:
		return map[string]interface{}{"var": t.Name}, nil
	case *Const:
		return map[string]interface{}{"const": t.Value}, nil
	case *Op:
		args := make([]interface{}, len(t.Args))
		for i, a := range t.Args {
			w, err := termToWire(a)
			if err != nil {
				return nil, err
			}
			args[i] = w
		}
		out := map[string]interface{}{"op": t.Name, "args": args}
		if len(t.Attrs) > 0 {
			out["attrs"] = t.Attrs
		}
		return out, nil
	default:
		return nil, errors.Wrapf(ErrMalformedTerm, "cannot encode term of type %T", e)
	}
}

// wireRule is the JSON shape of a rewrite rule.
type wireRule struct {
	Name string          `json:"name"`
	LHS  json.RawMessage `json:"lhs"`
	RHS  json.RawMessage `json:"rhs"`
}

// DecodeRule parses a JSON rule record {"name", "lhs", "rhs"} and validates
// it the same way NewRule does.
func DecodeRule(data []byte) (*Rule, error) {
	var w wireRule
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(ErrMalformedTerm, err.Error())
	}
	return decodeWireRule(w)
}

// DecodeRules parses a JSON array of rule records.
func DecodeRules(data []byte) ([]*Rule, error) {
	var ws []wireRule
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, errors.Wrap(ErrMalformedTerm, err.Error())
	}
	rules := make([]*Rule, len(ws))
	for i, w := range ws {
		r, err := decodeWireRule(w)
		if err != nil {
			return nil, errors.Wrapf(err, "rule %d", i)
		}
		rules[i] = r
	}
	return rules, nil
}

func decodeWireRule(w wireRule) (*Rule, error) {
	if w.Name == "" {
		return nil, errors.Wrap(ErrMalformedTerm, "rule is missing a name")
	}
	lhs, err := DecodeTerm(w.LHS)
	if err != nil {
		return nil, errors.Wrapf(err, "lhs of rule %q", w.Name)
	}
	rhs, err := DecodeTerm(w.RHS)
	if err != nil {
		return nil, errors.Wrapf(err, "rhs of rule %q", w.Name)
	}
	return NewRule(w.Name, lhs, rhs)
}
