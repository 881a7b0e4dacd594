package sma

import "fmt"

// SumTree keeps the window sum in a binary tree of partial sums with
// one leaf per window slot. Adding a sample rewrites one leaf and the
// partial sums on its path to the root, so the total is always a fresh
// combination of at most log2(capacity) additions deep — drift stays
// bounded by the tree depth no matter how many samples have streamed
// through. Add is O(log n), Average is O(1).
type SumTree[T Number] struct {
	// tree[1] is the root; leaves live at [leaves, 2*leaves). Node i
	// holds the sum of its children 2i and 2i+1.
	tree   []T
	leaves int
	next   int
	count  int
}

func NewSumTree[T Number](capacity int) (*SumTree[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	return &SumTree[T]{
		tree:   make([]T, 2*capacity),
		leaves: capacity,
	}, nil
}

func (a *SumTree[T]) Add(sample T) {
	// The next slot is the oldest once the window is full, so writing
	// it is insertion and eviction in one step.
	node := a.leaves + a.next
	a.tree[node] = sample
	for node /= 2; node >= 1; node /= 2 {
		a.tree[node] = a.tree[2*node] + a.tree[2*node+1]
	}
	a.next = (a.next + 1) % a.leaves
	if a.count < a.leaves {
		a.count++
	}
}

func (a *SumTree[T]) Average() (T, bool) {
	if a.count == 0 {
		var zero T
		return zero, false
	}
	return a.tree[1] / T(a.count), true
}

func (a *SumTree[T]) Latest() (T, bool) {
	if a.count == 0 {
		var zero T
		return zero, false
	}
	slot := (a.next - 1 + a.leaves) % a.leaves
	return a.tree[a.leaves+slot], true
}

func (a *SumTree[T]) Samples() []T {
	out := make([]T, 0, a.count)
	start := (a.next - a.count + a.leaves) % a.leaves
	for i := 0; i < a.count; i++ {
		out = append(out, a.tree[a.leaves+(start+i)%a.leaves])
	}
	return out
}

func (a *SumTree[T]) Len() int {
	return a.count
}

func (a *SumTree[T]) Cap() int {
	return a.leaves
}

func (a *SumTree[T]) Full() bool {
	return a.count == a.leaves
}
