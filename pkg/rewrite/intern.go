package rewrite

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// NodeID is the opaque identity an Interner assigns to a term node. Two
// structurally identical nodes, once interned in the same table, share a
// NodeID, making identity comparison O(1).
type NodeID int

// Interner is a hash-consing table mapping structural node keys to stable
// integer identities. Interning preserves argument order exactly: the table
// provides structural identity only, and equivalence modulo commutativity
// belongs exclusively to the canonicalizer and to rewrite rules. The two
// layers are deliberately kept apart.
//
// An Interner accumulates unbounded state and is owned by whichever task
// created it; create a fresh one (or Reset) per logical computation. It is
// not safe for concurrent mutation.
type Interner struct {
	index map[string]NodeID
	nodes []Expr
}

// NewInterner creates an empty hash-consing table.
func NewInterner() *Interner {
	return &Interner{index: make(map[string]NodeID)}
}

// Intern recursively interns a term and returns its NodeID. The structural
// key of an Op node is built from the operator name, the already-interned
// argument identities in their original order, and the attribute map.
func (in *Interner) Intern(e Expr) NodeID {
	key := in.keyOf(e)
	if id, ok := in.index[key]; ok {
		return id
	}
	id := NodeID(len(in.nodes))
	in.nodes = append(in.nodes, e)
	in.index[key] = id
	return id
}

// Node returns the term stored under an id, or false if the id was never
// assigned by this table.
func (in *Interner) Node(id NodeID) (Expr, bool) {
	if id < 0 || int(id) >= len(in.nodes) {
		return nil, false
	}
	return in.nodes[id], true
}

// Len returns the number of distinct nodes interned so far.
func (in *Interner) Len() int {
	return len(in.nodes)
}

// Reset clears the table so it can be reused for an unrelated computation.
// Previously issued NodeIDs become invalid.
func (in *Interner) Reset() {
	in.index = make(map[string]NodeID)
	in.nodes = nil
}

// keyOf builds the structural key. Every free-form component (names,
// string values, attribute keys) is quoted so no crafted name or constant
// can collide with the key of a different node.
func (in *Interner) keyOf(e Expr) string {
	switch t := e.(type) {
	case *Var:
		return fmt.Sprintf("var:%q", t.Name)
	case *Const:
		return fmt.Sprintf("const:%T:%#v", t.Value, t.Value)
	case *Op:
		var b strings.Builder
		b.WriteString("op:")
		fmt.Fprintf(&b, "%q", t.Name)
		if len(t.Attrs) > 0 {
			keys := make([]string, 0, len(t.Attrs))
			for k := range t.Attrs {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			b.WriteByte('{')
			for i, k := range keys {
				if i > 0 {
					b.WriteByte(' ')
				}
				fmt.Fprintf(&b, "%q=%#v", k, t.Attrs[k])
			}
			b.WriteByte('}')
		}
		b.WriteByte(':')
		for i, a := range t.Args {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%d", in.Intern(a))
		}
		return b.String()
	default:
		return fmt.Sprintf("opaque:%q", e.String())
	}
}

// EGraph groups interned node identities into equivalence classes. The
// relation it maintains is reflexive, symmetric and transitive, and is
// coarsened only through explicit Merge calls; it is separate from, and
// coarser-grained than, the canonicalizer's alpha/commutative equality.
//
// Like the Interner it wraps, an EGraph is a caller-owned mutable container
// with no internal locking.
type EGraph struct {
	interner *Interner
	parent   map[NodeID]NodeID
	classes  map[NodeID]*set.Set[NodeID]
}

// NewEGraph creates an empty e-graph with its own hash-consing table.
func NewEGraph() *EGraph {
	return &EGraph{
		interner: NewInterner(),
		parent:   make(map[NodeID]NodeID),
		classes:  make(map[NodeID]*set.Set[NodeID]),
	}
}

// Interner exposes the underlying hash-consing table.
func (g *EGraph) Interner() *Interner {
	return g.interner
}

// AddNode interns a term and registers it in its own singleton equivalence
// class if it was not known before. Returns the node's id.
func (g *EGraph) AddNode(e Expr) NodeID {
	id := g.interner.Intern(e)
	if _, ok := g.parent[id]; !ok {
		g.parent[id] = id
		members := set.New[NodeID](1)
		members.Insert(id)
		g.classes[id] = members
	}
	return id
}

// Find returns the canonical representative of the node's class: the
// minimum id among its members. Ids never registered via AddNode represent
// themselves.
func (g *EGraph) Find(id NodeID) NodeID {
	p, ok := g.parent[id]
	if !ok {
		return id
	}
	if p == id {
		return id
	}
	root := g.Find(p)
	g.parent[id] = root // path compression
	return root
}

// Merge unions the classes of two ids and returns the representative of the
// combined class. Merging already-equal ids is a no-op.
func (g *EGraph) Merge(id1, id2 NodeID) NodeID {
	r1 := g.Find(g.ensure(id1))
	r2 := g.Find(g.ensure(id2))
	if r1 == r2 {
		return r1
	}
	// The smaller id stays the root so Find always yields the minimum
	// id of the class.
	root, other := r1, r2
	if r2 < r1 {
		root, other = r2, r1
	}
	g.parent[other] = root
	g.classes[root].InsertSlice(g.classes[other].Slice())
	delete(g.classes, other)
	return root
}

// AreEqual reports whether two ids currently belong to the same
// equivalence class.
func (g *EGraph) AreEqual(id1, id2 NodeID) bool {
	return g.Find(id1) == g.Find(id2)
}

// Class returns the sorted members of the class containing id.
func (g *EGraph) Class(id NodeID) []NodeID {
	root := g.Find(id)
	members, ok := g.classes[root]
	if !ok {
		return []NodeID{id}
	}
	out := members.Slice()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ensure registers an id that may have been interned without AddNode.
func (g *EGraph) ensure(id NodeID) NodeID {
	if _, ok := g.parent[id]; !ok {
		g.parent[id] = id
		members := set.New[NodeID](1)
		members.Insert(id)
		g.classes[id] = members
	}
	return id
}
