package rewrite

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-set/v3"
	"go.uber.org/zap"
)

// Default resource bounds for Saturate. Saturation terminates by bound, not
// by reaching a true fixpoint: the bounds are an explicit backpressure
// valve against combinatorial blow-up, so the result is a best-effort,
// possibly incomplete exploration. Callers facing explosive rule sets
// should choose tighter limits up front.
const (
	DefaultMaxIters  = 50
	DefaultSeenLimit = 5000
)

// SaturateOptions tunes a saturation run. Zero values select the defaults;
// a nil Logger keeps the engine silent.
type SaturateOptions struct {
	// MaxIters bounds the number of frontier generations explored.
	MaxIters int

	// SeenLimit stops the exploration once this many distinct canonical
	// signatures have been recorded.
	SeenLimit int

	// Logger, when set, receives per-iteration trace output at debug level.
	Logger *zap.Logger
}

// Saturate explores the closure of term under repeated application of the
// given rules, with default bounds. It returns the deduplicated canonical
// forms discovered, in discovery order; the first result is always the
// canonical form of the input itself.
//
// Saturate never fails: it always terminates within its bounds and returns
// whatever was found, even if the exploration is incomplete.
func Saturate(term Expr, rules []*Rule) []Expr {
	return SaturateWith(term, rules, SaturateOptions{})
}

// SaturateWith is Saturate with explicit bounds and optional trace logging.
//
// Each iteration canonicalizes every frontier term, records terms whose
// signature is new, and then applies every rule to the original
// (non-canonicalized) term, collecting changed results into the next
// frontier. Exact duplicates are dropped from the next frontier; that
// only avoids repeating identical work, since equal terms rewrite equally.
func SaturateWith(term Expr, rules []*Rule, opts SaturateOptions) []Expr {
	maxIters := opts.MaxIters
	if maxIters <= 0 {
		maxIters = DefaultMaxIters
	}
	seenLimit := opts.SeenLimit
	if seenLimit <= 0 {
		seenLimit = DefaultSeenLimit
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var results []Expr
	seen := set.New[string](16)
	frontier := []Expr{term}

	for iter := 0; iter < maxIters && len(frontier) > 0 && seen.Size() < seenLimit; iter++ {
		var next []Expr
		nextKeys := set.New[string](len(frontier))

		for _, t := range frontier {
			cf := Canonicalize(t)
			if seen.Insert(cf.Sig) {
				results = append(results, cf.Expr)
			}
			for _, r := range rules {
				if changed, out := r.Apply(t); changed {
					if nextKeys.Insert(identityKey(out)) {
						next = append(next, out)
					}
				}
			}
		}

		logger.Debug("saturation iteration",
			zap.Int("iteration", iter),
			zap.Int("frontier", len(frontier)),
			zap.Int("discovered", seen.Size()),
		)
		frontier = next
	}
	return results
}

// identityKey serializes a term exactly, original variable names and
// argument order included, quoting every free-form component the same way
// the canonical signature does. Unlike a canonical signature it equates
// nothing beyond structural identity, so frontier deduplication by this
// key never changes what the exploration can reach.
func identityKey(e Expr) string {
	var b strings.Builder
	writeIdentityKey(&b, e)
	return b.String()
}

func writeIdentityKey(b *strings.Builder, e Expr) {
	switch t := e.(type) {
	case *Var:
		fmt.Fprintf(b, "(var %q)", t.Name)
	case *Const:
		fmt.Fprintf(b, "(const %T %#v)", t.Value, t.Value)
	case *Op:
		b.WriteString("(op ")
		fmt.Fprintf(b, "%q", t.Name)
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
				fmt.Fprintf(b, "%q=%#v", k, t.Attrs[k])
			}
			b.WriteByte('}')
		}
		for _, a := range t.Args {
			b.WriteByte(' ')
			writeIdentityKey(b, a)
		}
		b.WriteByte(')')
	default:
		fmt.Fprintf(b, "(opaque %q)", e.String())
	}
}
