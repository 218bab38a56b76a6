package symbol

import "testing"

func TestDefaultComparable(t *testing.T) {
	ops := Default[byte]()
	if !ops.Eq('a', 'a') {
		t.Fatalf("Eq('a','a') = false; want true")
	}
	if ops.Eq('a', 'b') {
		t.Fatalf("Eq('a','b') = true; want false")
	}
	if ops.Copy('a') != 'a' {
		t.Fatalf("Copy('a') = %v; want 'a'", ops.Copy('a'))
	}
	ops.Drop('a') // must not panic
}

type point struct{ x, y int }

func TestNewOpsFallsBackToDeepEqual(t *testing.T) {
	ops := NewOps[point](nil, nil, nil)
	if !ops.Eq(point{1, 2}, point{1, 2}) {
		t.Fatalf("Eq(equal points) = false; want true")
	}
	if ops.Eq(point{1, 2}, point{3, 4}) {
		t.Fatalf("Eq(distinct points) = true; want false")
	}
	if ops.Copy(point{1, 2}) != (point{1, 2}) {
		t.Fatalf("Copy did not preserve value")
	}
}

func TestNewOpsHonorsOverrides(t *testing.T) {
	var dropped []int
	ops := NewOps[int](
		func(a, b int) bool { return a%10 == b%10 },
		func(a int) int { return a + 1 },
		func(a int) { dropped = append(dropped, a) },
	)
	if !ops.Eq(3, 13) {
		t.Fatalf("custom Eq not honored")
	}
	if ops.Copy(5) != 6 {
		t.Fatalf("custom Copy not honored")
	}
	ops.Drop(7)
	if len(dropped) != 1 || dropped[0] != 7 {
		t.Fatalf("custom Drop not honored, got %v", dropped)
	}
}
