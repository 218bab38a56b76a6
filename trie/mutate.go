package trie

// Walk follows keyword from root for as long as matching outgoing edges
// exist, using eq to compare symbols. It returns the deepest state reached
// and the number of leading symbols of keyword that were consumed.
//
// Time Complexity: O(k) edge comparisons in the worst case, where k is the
// length of keyword (assuming eq is O(1)).
func Walk[T any, V any](root *State[T, V], keyword []T, eq func(a, b T) bool) (*State[T, V], int) {
	s := root
	for i, sym := range keyword {
		child, _, ok := FindChild(s, sym, eq)
		if !ok {
			return s, i
		}
		s = child
	}
	return s, len(keyword)
}

// Extend appends a fresh state and edge for every symbol in remaining,
// starting from s, copying each symbol via copyFn so the new edge owns its
// own instance independent of the caller's keyword slice. It returns the
// final, newly created state.
func Extend[T any, V any](s *State[T, V], remaining []T, copyFn func(T) T) *State[T, V] {
	for _, sym := range remaining {
		child := &State[T, V]{}
		idx := len(s.Edges)
		s.Edges = append(s.Edges, Edge[T, V]{Sym: copyFn(sym), Child: child})
		child.Parent = &ParentLink[T, V]{State: s, Index: idx}
		s = child
	}
	return s
}

// Locate returns the terminal state reached by keyword, or nil if keyword
// is not fully present in the trie or the state it reaches is not
// currently terminal.
func Locate[T any, V any](root *State[T, V], keyword []T, eq func(a, b T) bool) *State[T, V] {
	s, consumed := Walk(root, keyword, eq)
	if consumed != len(keyword) || !s.IsTerminal {
		return nil
	}
	return s
}

// Prune removes a non-terminal, childless leaf state t and climbs toward
// the root, removing each ancestor that becomes a non-terminal childless
// leaf as a result. It stops at the root, or at the first ancestor that is
// still terminal or still has remaining edges.
//
// Algorithm Steps:
//  1. Drop the edge in the parent that points to the current state,
//     compacting the parent's edge slice.
//  2. Re-index the surviving siblings whose position shifted, so every
//     Parent.Index back-link stays correct.
//  3. Call dropSym on the removed edge's symbol and the state's own
//     destructor (if any) on its value.
//  4. Continue with the parent if it is not the root, is not itself
//     terminal, and has no remaining edges; otherwise stop.
//
// Time Complexity: O(b) re-indexing work per pruned ancestor, where b is
// the number of edges of that ancestor's parent, and O(depth)
// ancestors in the worst case (a keyword with no shared prefix or suffix
// with any other registered keyword).
func Prune[T any, V any](t *State[T, V], dropSym func(T)) {
	cur := t
	for {
		if cur.Parent == nil {
			return
		}
		parent := cur.Parent.State
		idx := cur.Parent.Index

		dropSym(parent.Edges[idx].Sym)
		if cur.HasValue && cur.Dtor != nil {
			cur.Dtor(cur.Value)
		}

		parent.Edges = append(parent.Edges[:idx], parent.Edges[idx+1:]...)
		for j := idx; j < len(parent.Edges); j++ {
			parent.Edges[j].Child.Parent.Index = j
		}
		cur.Parent = nil

		if parent.Parent == nil || parent.IsTerminal || len(parent.Edges) > 0 {
			return
		}
		cur = parent
	}
}
