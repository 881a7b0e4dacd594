// Package window provides a fixed-capacity ring buffer of samples,
// insertion-ordered, oldest evicted first.
package window

import (
	"errors"
	"fmt"
	"iter"
)

var ErrInvalidCapacity = errors.New("window capacity must be at least 1")

// Window holds up to Cap() samples in a fixed backing array. The zero
// value is not usable; construct with New.
type Window[T any] struct {
	slots []T
	next  int // index of the slot the next Push writes
	count int
}

func New[T any](capacity int) (*Window[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	return &Window[T]{
		slots: make([]T, capacity),
	}, nil
}

// Push inserts a sample, evicting the oldest one if the window is full.
// The evicted sample is returned with ok set; otherwise ok is false.
func (w *Window[T]) Push(sample T) (evicted T, ok bool) {
	if w.count == len(w.slots) {
		evicted = w.slots[w.next]
		ok = true
	} else {
		w.count++
	}
	w.slots[w.next] = sample
	w.next = (w.next + 1) % len(w.slots)
	return evicted, ok
}

func (w *Window[T]) Len() int {
	return w.count
}

func (w *Window[T]) Cap() int {
	return len(w.slots)
}

func (w *Window[T]) Full() bool {
	return w.count == len(w.slots)
}

// Newest returns the most recently pushed sample, if any.
func (w *Window[T]) Newest() (T, bool) {
	if w.count == 0 {
		var zero T
		return zero, false
	}
	return w.slots[(w.next-1+len(w.slots))%len(w.slots)], true
}

// All iterates over the current contents, oldest to newest. Each call
// yields a fresh pass over the state at call time.
func (w *Window[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		start := (w.next - w.count + len(w.slots)) % len(w.slots)
		for i := 0; i < w.count; i++ {
			if !yield(w.slots[(start+i)%len(w.slots)]) {
				return
			}
		}
	}
}

// Slice appends the current contents to dst, oldest to newest.
func (w *Window[T]) Slice(dst []T) []T {
	for s := range w.All() {
		dst = append(dst, s)
	}
	return dst
}
