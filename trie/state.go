/*
Package trie implements the goto graph of a multi-pattern matching
automaton: a rooted tree of states where each non-root state is reached
from its parent by exactly one symbol of a generic, caller-chosen alphabet.

This package used to hold a rune-keyed, map-backed prefix tree (one child
map per node, no parent back-links). That representation cannot support two
things the automaton in github.com/Zubayear/ahocorasick/ahocorasick needs:
a stable edge index for the parent back-link used during reverse keyword
reconstruction, and an open-ended (non-comparable-friendly) symbol type with
caller-supplied equality. The package now stores edges as an ordered slice
per state instead of a map, and keeps an explicit (parent, edge index) back-
link on every non-root state.

State ownership, edge ownership and value ownership follow the distilled
spec: a state's edges are created by Extend and destroyed by Prune;
a symbol on an edge is owned by that edge (copied in, dropped on removal);
a value attached to a terminal state is owned by the state (destroyed via
its stored destructor on removal or release).
*/
package trie

// Edge is one labelled transition out of a state. Duplicate symbols under
// one state are forbidden by construction (Extend only ever appends
// an edge for a symbol that Walk has already determined is absent).
type Edge[T any, V any] struct {
	Sym   T
	Child *State[T, V]
}

// ParentLink is the back-pointer from a non-root state to its parent and
// the index, within the parent's edge slice, of the edge that reaches this
// state. The invariant Parent.State.Edges[Parent.Index].Child == s holds
// for every non-root state s and is maintained across edge removal by
// re-indexing the surviving siblings whose index shifts.
type ParentLink[T any, V any] struct {
	State *State[T, V]
	Index int
}

// State is a node of the goto graph.
type State[T any, V any] struct {
	Edges  []Edge[T, V]
	Parent *ParentLink[T, V] // nil iff s is the root

	// Fail is the failure link. For the root it is always nil, meaning
	// "none". For any other state it is nil until the first rebuild that
	// reaches it; mutations do not reset it, so while the failure layer is
	// stale (Machine.reconstruct != Clean) it may still hold the link from
	// the previous rebuild.
	Fail *State[T, V]

	// OutputCount caches the number of registered keywords reachable from
	// this state by repeatedly following Fail. Meaningful only once the
	// failure layer has been rebuilt.
	OutputCount int

	// IsTerminal is true iff a keyword currently ends at this state.
	IsTerminal bool

	// Rank is the 0-based insertion-order identifier of the keyword ending
	// here, assigned by the controller at registration time. Forgotten
	// (reset to 0) when the state is softly unregistered while it still
	// has children; see DESIGN.md for the rationale.
	Rank int

	// Value/HasValue/Dtor hold the caller's opaque per-keyword payload and
	// its destructor, present only while IsTerminal.
	Value    V
	HasValue bool
	Dtor     func(V)
}

// NewRoot returns a fresh root state: no parent, no fail link (which is the
// correct, permanent value for the root, not a staleness marker), no edges.
func NewRoot[T any, V any]() *State[T, V] {
	return &State[T, V]{}
}

// IsRoot reports whether s is the root of its trie.
func (s *State[T, V]) IsRoot() bool {
	return s.Parent == nil
}

// FindChild returns the child reached from s by sym, and the index of that
// edge within s.Edges, if such an edge exists.
func FindChild[T any, V any](s *State[T, V], sym T, eq func(a, b T) bool) (*State[T, V], int, bool) {
	for i := range s.Edges {
		if eq(s.Edges[i].Sym, sym) {
			return s.Edges[i].Child, i, true
		}
	}
	return nil, -1, false
}
