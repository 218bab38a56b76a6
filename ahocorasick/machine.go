/*
Package ahocorasick is the automaton controller: it wires a
github.com/Zubayear/ahocorasick/trie goto graph and a
github.com/Zubayear/ahocorasick/failure failure layer together behind a
Machine that supports incremental keyword registration and unregistration
between searches, and Cursor values that scan a shared Machine concurrently.

A Machine never recomputes fail links and output counts eagerly on every
Register/Unregister call; that would make bulk dictionary loading
quadratic. Instead each mutation flips a tri-state flag, and the first
subsequent scan pays for one rebuild covering every pending mutation.
Concurrent cursors therefore all observe the same rebuild rather than
racing to perform their own.

Mutating operations (Register, Unregister, Release) are not safe to call
concurrently with anything else on the same Machine; the caller is
expected to serialize them, exactly as with every other container in this
module. Read-only operations (Reset, IsRegistered, KeywordCount,
ForEachKeyword, TopKeywords) and everything on Cursor are safe for
concurrent use by multiple goroutines once mutation has stopped.
*/
package ahocorasick

import (
	"sync"
	"sync/atomic"

	"github.com/Zubayear/ahocorasick/failure"
	"github.com/Zubayear/ahocorasick/priorityqueue"
	"github.com/Zubayear/ahocorasick/stack"
	"github.com/Zubayear/ahocorasick/symbol"
	"github.com/Zubayear/ahocorasick/trie"
	"github.com/Zubayear/ahocorasick/treemap"
)

// reconstructState tracks how stale the failure layer is.
//
//   - clean: every Fail link and OutputCount reachable from root is
//     current; Transition and MatchAt may be called directly.
//   - structural: the Machine has never been rebuilt (the trivial case
//     right after New, before any scan); output counts are already fresh
//     from construction, so the first rebuild can skip resetting them.
//   - outputAlso: at least one Register or Unregister has happened since
//     the last rebuild; the next rebuild must reset every OutputCount
//     before re-propagating, since terminal status may have changed.
type reconstructState int32

const (
	clean reconstructState = iota
	structural
	outputAlso
)

// KeywordValue pairs a reconstructed keyword with its registered value, as
// returned by TopKeywords.
type KeywordValue[T any, V any] struct {
	Keyword []T
	Value   V
}

// Machine is a mutable collection of registered keywords plus the goto
// graph and failure layer needed to scan for all of them in one pass over
// an input sequence. The symbol type T must be comparable so that the
// keyword-reconstruction buffer (github.com/Zubayear/ahocorasick/deque)
// can be reused unchanged; symbol.Ops[T] still lets a caller override
// equality for types where == is not the comparison they want (e.g.
// wrapper structs holding a pointer alongside a logical key).
type Machine[T comparable, V any] struct {
	ops  symbol.Ops[T]
	root *trie.State[T, V]

	mu          sync.Mutex
	reconstruct atomic.Int32

	nextRank     int
	keywordCount int
	index        *treemap.TreeMap[int, *trie.State[T, V]]
}

// New creates an empty Machine using the given operator bundle for symbol
// equality, copying and destruction.
//
// Time Complexity: O(1)
func New[T comparable, V any](ops symbol.Ops[T]) *Machine[T, V] {
	m := &Machine[T, V]{
		ops:   ops,
		root:  trie.NewRoot[T, V](),
		index: treemap.NewTreeMap[int, *trie.State[T, V]](),
	}
	m.reconstruct.Store(int32(structural))
	return m
}

// NewDefault creates an empty Machine using the built-in == operator for
// equality, identity copy, and a no-op destructor — the common case for
// primitive alphabets such as byte or rune.
//
// Time Complexity: O(1)
func NewDefault[T comparable, V any]() *Machine[T, V] {
	return New[T, V](symbol.Default[T]())
}

// markDirty records that the failure layer is stale. It only ever moves
// the flag toward outputAlso: once a Register or Unregister has happened,
// every later rebuild must reset output counts, regardless of how many
// further mutations pile up before the next scan.
func (m *Machine[T, V]) markDirty() {
	for {
		cur := reconstructState(m.reconstruct.Load())
		if cur == outputAlso {
			return
		}
		if m.reconstruct.CompareAndSwap(int32(cur), int32(outputAlso)) {
			return
		}
	}
}

// ensureClean rebuilds the failure layer if it is stale. The fast path
// (already clean) is a single atomic load with no locking; a stale
// Machine takes mu, re-checks under the lock in case another goroutine
// already rebuilt, and otherwise calls failure.Rebuild once, covering every
// mutation that accumulated since the last rebuild.
func (m *Machine[T, V]) ensureClean() {
	if reconstructState(m.reconstruct.Load()) == clean {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := reconstructState(m.reconstruct.Load())
	if cur == clean {
		return
	}
	failure.Rebuild(m.root, m.ops.Eq, cur == outputAlso)
	m.reconstruct.Store(int32(clean))
}

// Register adds keyword to the Machine with the given value and
// destructor. It returns false without modifying anything if keyword is
// empty or already registered; in either case, if value was supplied
// alongside a non-nil dtor, dtor is invoked on it exactly once so the
// caller never leaks a value that the Machine declined to take ownership
// of. dtor may be nil, meaning the value needs no cleanup on Unregister
// or Release.
//
// Algorithm Steps:
//  1. Reject an empty keyword.
//  2. Walk existing edges from root for as long as keyword matches them.
//  3. Extend the trie with fresh states/edges for the unmatched suffix.
//  4. If the reached state is already terminal, keyword was already
//     registered; return false.
//  5. Otherwise mark it terminal, assign it the next rank, attach the
//     value and destructor, and flip the reconstruct flag.
//
// Time Complexity: O(k) where k = len(keyword), plus the amortized cost
// of the next scan's failure-layer rebuild.
func (m *Machine[T, V]) Register(keyword []T, value V, dtor func(V)) bool {
	if len(keyword) == 0 {
		if dtor != nil {
			dtor(value)
		}
		return false
	}

	s, consumed := trie.Walk(m.root, keyword, m.ops.Eq)
	end := trie.Extend(s, keyword[consumed:], m.ops.Copy)

	if end.IsTerminal {
		if dtor != nil {
			dtor(value)
		}
		return false
	}

	end.IsTerminal = true
	end.Rank = m.nextRank
	m.nextRank++
	end.Value = value
	end.HasValue = true
	end.Dtor = dtor
	m.keywordCount++
	m.index.Put(end.Rank, end)
	m.markDirty()
	return true
}

// Unregister removes keyword from the Machine, invoking its destructor if
// one was supplied at registration. It returns false if keyword was not
// registered.
//
// If the state keyword reaches still has children (it is a proper prefix
// of some other registered keyword), the state survives as a non-terminal
// branch point and its rank is reset to 0 — see DESIGN.md for why a
// resettable rank is safe here. Otherwise the now-dead leaf, and every
// ancestor that becomes a dead leaf as a result, is pruned from the trie.
//
// Time Complexity: O(k) to locate keyword, plus O(depth) pruning work.
func (m *Machine[T, V]) Unregister(keyword []T) bool {
	end := trie.Locate(m.root, keyword, m.ops.Eq)
	if end == nil {
		return false
	}

	end.IsTerminal = false
	m.keywordCount--
	m.index.Remove(end.Rank)

	if end.HasValue && end.Dtor != nil {
		end.Dtor(end.Value)
	}
	var zero V
	end.Value = zero
	end.HasValue = false
	end.Dtor = nil

	if len(end.Edges) == 0 {
		trie.Prune(end, m.ops.Drop)
	} else {
		end.Rank = 0
	}

	m.markDirty()
	return true
}

// IsRegistered reports whether keyword is currently registered.
//
// Time Complexity: O(k)
func (m *Machine[T, V]) IsRegistered(keyword []T) bool {
	return trie.Locate(m.root, keyword, m.ops.Eq) != nil
}

// IsRegisteredValue reports whether keyword is currently registered and,
// if so, also returns its attached value — the optional value-out form
// of IsRegistered for callers that need the value without a second trie
// walk via ForEachKeyword.
//
// Time Complexity: O(k)
func (m *Machine[T, V]) IsRegisteredValue(keyword []T) (V, bool) {
	s := trie.Locate(m.root, keyword, m.ops.Eq)
	if s == nil {
		var zero V
		return zero, false
	}
	return s.Value, true
}

// KeywordCount returns the number of keywords currently registered.
//
// Time Complexity: O(1)
func (m *Machine[T, V]) KeywordCount() int {
	return m.keywordCount
}

// ForEachKeyword calls fn once per registered keyword, in ascending rank
// (registration) order, reconstructing each keyword from its terminal
// state's parent back-links.
//
// Time Complexity: O(n*k) where n = keyword count and k = average
// keyword length, dominated by reconstruction, plus O(n) for the
// in-order walk of the rank index.
func (m *Machine[T, V]) ForEachKeyword(fn func(keyword []T, value V)) {
	for _, rank := range m.index.Keys() {
		s, ok := m.index.Get(rank)
		if !ok {
			continue
		}
		fn(reconstructKeyword(s), s.Value)
	}
}

// TopKeywords returns up to k registered (keyword, value) pairs, ordered
// so that for any two returned pairs a and b with a returned before b,
// less(b.Value, a.Value) does not hold — i.e. the pairs whose value is
// "largest" under less come first. It is additive sugar over
// ForEachKeyword for callers that already treat V as something
// orderable (an occurrence counter, a score); it reads the rank index
// once and does not require the failure layer to be rebuilt.
//
// Time Complexity: O(n log n) where n = keyword count.
func (m *Machine[T, V]) TopKeywords(k int, less func(a, b V) bool) []KeywordValue[T, V] {
	if k <= 0 {
		return nil
	}

	heap := priorityqueue.NewBinaryHeapWithComparator[KeywordValue[T, V]](func(a, b KeywordValue[T, V]) bool {
		return less(b.Value, a.Value)
	})
	for _, rank := range m.index.Keys() {
		s, ok := m.index.Get(rank)
		if !ok {
			continue
		}
		heap.Add(KeywordValue[T, V]{Keyword: reconstructKeyword(s), Value: s.Value})
	}

	out := make([]KeywordValue[T, V], 0, k)
	for i := 0; i < k && !heap.IsEmpty(); i++ {
		v, err := heap.Poll()
		if err != nil {
			break
		}
		out = append(out, v)
	}
	return out
}

// Release tears the Machine down: every terminal state's destructor is
// invoked, every edge symbol is dropped, and the Machine is left in the
// same state New would have produced. Any Cursor obtained before Release
// must not be used afterward.
//
// The walk is an explicit-stack depth-first traversal, not a recursive
// one, so teardown of a trie as deep as the longest registered keyword
// never risks Go's goroutine stack growth limit; it also visits every
// state, terminal or not, which is why it cannot simply walk the rank
// index the way ForEachKeyword does.
//
// Time Complexity: O(states), one Drop call per edge and one Dtor call
// per terminal state.
func (m *Machine[T, V]) Release() {
	st := stack.NewStack[*trie.State[T, V]]()
	st.Push(m.root)
	for !st.IsEmpty() {
		s, err := st.Pop()
		if err != nil {
			break
		}
		if s.IsTerminal && s.HasValue && s.Dtor != nil {
			s.Dtor(s.Value)
		}
		for i := range s.Edges {
			m.ops.Drop(s.Edges[i].Sym)
			st.Push(s.Edges[i].Child)
		}
	}

	m.root = trie.NewRoot[T, V]()
	m.index = treemap.NewTreeMap[int, *trie.State[T, V]]()
	m.nextRank = 0
	m.keywordCount = 0
	m.reconstruct.Store(int32(structural))
}
