/*
Package failure computes the failure-link and output-count layer on top of
a github.com/Zubayear/ahocorasick/trie goto graph: for every state, the
failure link (the deepest proper suffix of the path to that state which is
also a path from the root) and a cached count of the keywords matched by
following that chain.

Because the alphabet is open-ended, the root cannot be given the classical
"self-loop for every symbol not already an edge" treatment: materializing
one root edge per possible symbol is impossible when symbols are not drawn
from a bounded set. Transition instead special-cases the root directly: a
failed transition at the root simply returns the root, without ever
consulting a root fail link (which is, and stays, nil).
*/
package failure

import (
	"github.com/Zubayear/ahocorasick/queue"
	"github.com/Zubayear/ahocorasick/trie"
)

// Transition implements the automaton's δ(s, c): it returns the state
// reached by consuming symbol sym from s, following fail links as needed.
// It is pure and has no side effects; it requires the failure layer to
// already be rebuilt for every state on the fail chain it walks (i.e. it
// must not be called while reconstruct != Clean).
func Transition[T any, V any](s *trie.State[T, V], sym T, eq func(a, b T) bool) *trie.State[T, V] {
	for {
		if child, _, ok := trie.FindChild(s, sym, eq); ok {
			return child
		}
		if s.IsRoot() {
			return s
		}
		s = s.Fail
	}
}

// Rebuild recomputes the failure link and output count of every state
// reachable from root, by breadth-first propagation. When resetOutputs is
// true (the controller's reconstruct flag is OutputAlso) every state's
// OutputCount is first reset to 1 if terminal, 0 otherwise; when false
// (Structural, used only on the very first rebuild after creation) the
// reset is skipped because counts are already fresh from construction.
//
// Algorithm Steps (distilled spec §4.3):
//  1. root.Fail stays nil ("none").
//  2. Each root child's Fail is set to root and the child is enqueued.
//  3. For each dequeued state r and each of its edges (c, s):
//     Fail(s) = Transition(Fail(r), c); OutputCount(s) += OutputCount(Fail(s));
//     enqueue s.
func Rebuild[T any, V any](root *trie.State[T, V], eq func(a, b T) bool, resetOutputs bool) {
	if resetOutputs {
		resetOutputCounts(root)
	}

	root.Fail = nil

	q := queue.NewQueue[*trie.State[T, V]]()
	for i := range root.Edges {
		child := root.Edges[i].Child
		child.Fail = root
		q.Enqueue(child)
	}

	for !q.IsEmpty() {
		r, err := q.Dequeue()
		if err != nil {
			break
		}
		for i := range r.Edges {
			c := r.Edges[i].Sym
			s := r.Edges[i].Child
			s.Fail = Transition(r.Fail, c, eq)
			s.OutputCount += s.Fail.OutputCount
			q.Enqueue(s)
		}
	}
}

// resetOutputCounts walks the whole trie (any order; depth-first via an
// explicit stack to avoid recursion depth proportional to keyword length)
// and resets every state's OutputCount to its own terminal contribution,
// ahead of the BFS propagation pass that adds each state's fail-chain
// contribution back in.
func resetOutputCounts[T any, V any](root *trie.State[T, V]) {
	stack := []*trie.State[T, V]{root}
	for len(stack) > 0 {
		n := len(stack) - 1
		s := stack[n]
		stack = stack[:n]

		if s.IsTerminal {
			s.OutputCount = 1
		} else {
			s.OutputCount = 0
		}
		for i := range s.Edges {
			stack = append(stack, s.Edges[i].Child)
		}
	}
}
