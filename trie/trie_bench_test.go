package trie

import (
	"fmt"
	"testing"
)

func generateWords(n int) [][]byte {
	words := make([][]byte, n)
	for i := 0; i < n; i++ {
		words[i] = []byte(fmt.Sprintf("word%d", i))
	}
	return words
}

func BenchmarkExtend(b *testing.B) {
	words := generateWords(1000)
	for i := 0; i < b.N; i++ {
		root := NewRoot[byte, int]()
		for _, w := range words {
			s, consumed := Walk(root, w, byteEq)
			end := Extend(s, w[consumed:], byteCopy)
			end.IsTerminal = true
		}
	}
}

func BenchmarkLocate(b *testing.B) {
	words := generateWords(1000)
	root := NewRoot[byte, int]()
	for _, w := range words {
		s, consumed := Walk(root, w, byteEq)
		end := Extend(s, w[consumed:], byteCopy)
		end.IsTerminal = true
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		Locate(root, words[i%len(words)], byteEq)
	}
}
