package rewrite

import "github.com/pkg/errors"

// Sentinel errors surfaced by the engine. A failed match or an unchanged
// rewrite is an expected, frequent outcome and is reported as a return
// value, never as an error; the errors below signal caller or rule-authoring
// bugs that must not be silently ignored.
var (
	// ErrUnboundPatternVariable is returned by Substitute when a pattern
	// references a variable the binding environment never bound (typically a
	// right-hand side naming a variable the left-hand side does not match).
	ErrUnboundPatternVariable = errors.New("unbound pattern variable")

	// ErrInvalidPattern is returned by Substitute when a pattern is not a
	// Var, Const or Op term.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrEmptyCandidateSet is returned by ExtractBest when given no
	// candidate terms to choose from.
	ErrEmptyCandidateSet = errors.New("empty candidate set")

	// ErrMalformedTerm is returned by the wire decoder when a JSON record
	// carries none (or more than one) of the var/const/op tags, or a tag of
	// the wrong shape.
	ErrMalformedTerm = errors.New("malformed term")
)
