package ahocorasick

import (
	"testing"

	"github.com/Zubayear/ahocorasick/set"
	"github.com/Zubayear/ahocorasick/trie"
	"github.com/stretchr/testify/require"
)

func buildClassic(t *testing.T) *Machine[byte, int] {
	t.Helper()
	m := NewDefault[byte, int]()
	for i, w := range []string{"he", "she", "his", "hers"} {
		require.True(t, m.Register([]byte(w), i, nil))
	}
	return m
}

func walkStates[T comparable, V any](s *trie.State[T, V], visit func(*trie.State[T, V])) {
	visit(s)
	for i := range s.Edges {
		walkStates(s.Edges[i].Child, visit)
	}
}

// TestTreeShapeInvariant is testable property #1: every non-root state's
// parent back-link resolves, through the parent's own edge slice, back to
// that exact state.
func TestTreeShapeInvariant(t *testing.T) {
	m := buildClassic(t)
	walkStates(m.root, func(s *trie.State[byte, int]) {
		if s.IsRoot() {
			return
		}
		require.Same(t, s, s.Parent.State.Edges[s.Parent.Index].Child)
	})
}

// TestEdgeUniquenessInvariant is testable property #2: no state has two
// outgoing edges with equal symbols.
func TestEdgeUniquenessInvariant(t *testing.T) {
	m := buildClassic(t)
	walkStates(m.root, func(s *trie.State[byte, int]) {
		seen := set.NewUnorderedSet[byte]()
		for i := range s.Edges {
			require.True(t, seen.Insert(s.Edges[i].Sym), "duplicate edge symbol %q", s.Edges[i].Sym)
		}
	})
}

// TestRankUniquenessInvariant is testable property #3: every live
// terminal state has a distinct rank, and the count of terminal states
// found by a full trie walk matches Machine.KeywordCount.
func TestRankUniquenessInvariant(t *testing.T) {
	m := buildClassic(t)
	require.True(t, m.Unregister([]byte("his")))
	m.Register([]byte("history"), 99, nil) // shares a prefix with the pruned "his"

	seen := set.NewUnorderedSet[int]()
	terminalCount := 0
	walkStates(m.root, func(s *trie.State[byte, int]) {
		if !s.IsTerminal {
			return
		}
		terminalCount++
		require.True(t, seen.Insert(s.Rank), "duplicate rank %d", s.Rank)
	})
	require.Equal(t, m.KeywordCount(), terminalCount)
}

// TestMonotoneRankInvariant is testable property #4: ranks strictly
// increase in registration order.
func TestMonotoneRankInvariant(t *testing.T) {
	m := NewDefault[byte, int]()
	words := []string{"zebra", "apple", "mango", "kiwi"}
	var ranks []int
	for _, w := range words {
		require.True(t, m.Register([]byte(w), 0, nil))
		s := trie.Locate(m.root, []byte(w), m.ops.Eq)
		require.NotNil(t, s)
		ranks = append(ranks, s.Rank)
	}
	for i := 1; i < len(ranks); i++ {
		require.Greater(t, ranks[i], ranks[i-1])
	}
}

// TestFailChainOutputIdentity is testable property #6: after a rebuild,
// every state's OutputCount equals its own terminal contribution plus its
// fail link's OutputCount.
func TestFailChainOutputIdentity(t *testing.T) {
	m := buildClassic(t)
	c := m.Reset()
	c.Feed('x') // forces the lazy rebuild

	walkStates(m.root, func(s *trie.State[byte, int]) {
		want := 0
		if s.IsTerminal {
			want = 1
		}
		if !s.IsRoot() {
			want += s.Fail.OutputCount
		}
		require.Equal(t, want, s.OutputCount, "output_count mismatch for a state")
	})
}

// TestNoDeadLeavesAfterUnregister checks the post-removal invariant from
// §3: the trie contains no non-terminal leaf other than possibly the
// root.
func TestNoDeadLeavesAfterUnregister(t *testing.T) {
	m := NewDefault[byte, int]()
	m.Register([]byte("car"), 0, nil)
	m.Register([]byte("cart"), 0, nil)
	m.Register([]byte("carton"), 0, nil)

	require.True(t, m.Unregister([]byte("cart")))
	require.True(t, m.Unregister([]byte("carton")))

	walkStates(m.root, func(s *trie.State[byte, int]) {
		if s.IsRoot() {
			return
		}
		if len(s.Edges) == 0 {
			require.True(t, s.IsTerminal, "non-terminal leaf survived pruning")
		}
	})
	require.True(t, m.IsRegistered([]byte("car")))
}
