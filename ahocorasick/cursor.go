package ahocorasick

import (
	"fmt"

	"github.com/Zubayear/ahocorasick/deque"
	"github.com/Zubayear/ahocorasick/failure"
	"github.com/Zubayear/ahocorasick/trie"
)

// Cursor is a single pointer to the goto-graph state reached by the
// symbols fed into it so far — a small value type that owns no resource
// needing synchronization. Multiple cursors may scan the same Machine
// concurrently as long as nothing is mutating it.
type Cursor[T comparable, V any] struct {
	m   *Machine[T, V]
	cur *trie.State[T, V]
}

// Reset returns a fresh Cursor positioned at the root of m.
//
// Time Complexity: O(1)
func (m *Machine[T, V]) Reset() *Cursor[T, V] {
	return &Cursor[T, V]{m: m, cur: m.root}
}

// Feed advances the cursor by one symbol, following failure links as
// needed, and returns the reached state's output_count — the number of
// keywords currently ending at the new position, and therefore an upper
// bound (exclusive) on the index a following MatchAt call may use. It
// rebuilds the Machine's failure layer first if a Register or
// Unregister happened since the last rebuild.
//
// Time Complexity: amortized O(1) (O(depth) in the rare worst case of a
// long chain of failed transitions), plus the machine-wide cost of a
// pending rebuild the first time any cursor calls Feed after a mutation.
func (c *Cursor[T, V]) Feed(sym T) int {
	c.m.ensureClean()
	c.cur = failure.Transition(c.cur, sym, c.m.ops.Eq)
	return c.cur.OutputCount
}

// MatchAt returns the rank of the index-th (0-based) keyword ending at
// the cursor's current position, walking the failure-link chain from
// the longest match toward the shortest. index must be strictly less
// than the output_count last returned by Feed; MatchAt panics otherwise
// (including on a negative index).
//
// If outKeyword is non-nil, the matched keyword's symbols are
// reconstructed into *outKeyword; if outValue is non-nil, the matched
// value is copied into *outValue. Both are optional so a caller that
// only wants the rank never pays for reconstruction.
//
// Time Complexity: O(index) to walk the fail chain, plus O(k) for
// keyword reconstruction when outKeyword is requested, where k is the
// matched keyword's length.
func (c *Cursor[T, V]) MatchAt(index int, outKeyword *[]T, outValue *V) int {
	if index < 0 {
		panic(fmt.Sprintf("ahocorasick: MatchAt index %d must not be negative", index))
	}

	seen := 0
	for s := c.cur; !s.IsRoot() && s.OutputCount > 0; s = s.Fail {
		if !s.IsTerminal {
			continue
		}
		if seen == index {
			if outKeyword != nil {
				*outKeyword = reconstructKeyword(s)
			}
			if outValue != nil {
				*outValue = s.Value
			}
			return s.Rank
		}
		seen++
	}
	panic(fmt.Sprintf("ahocorasick: MatchAt index %d out of range [0,%d)", index, seen))
}

// reconstructKeyword rebuilds the symbol sequence leading to s by
// repeatedly stepping to its parent and prepending the edge symbol that
// was taken, using a deque so each prepend is O(1) instead of the O(k)
// a slice-reverse would cost after walking root-to-s in the wrong
// direction.
//
// Time Complexity: O(k) where k is the depth of s.
func reconstructKeyword[T comparable, V any](s *trie.State[T, V]) []T {
	buf := deque.NewDeque[T]()
	for cur := s; cur.Parent != nil; cur = cur.Parent.State {
		sym := cur.Parent.State.Edges[cur.Parent.Index].Sym
		buf.OfferFirst(sym)
	}
	return buf.ToSlice()
}
