package sma

import (
	"fmt"

	"github.com/mikesmitty/smoothie/pkg/window"
)

// Recompute keeps no aggregate state. Every Average call sums the
// window from scratch, so rounding error never carries over from one
// query to the next. Suited to callers that query far less often than
// they add, or that want the reference answer.
type Recompute[T Number] struct {
	win *window.Window[T]
}

func NewRecompute[T Number](capacity int) (*Recompute[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	win, err := window.New[T](capacity)
	if err != nil {
		return nil, err
	}
	return &Recompute[T]{win: win}, nil
}

func (a *Recompute[T]) Add(sample T) {
	a.win.Push(sample)
}

func (a *Recompute[T]) Average() (T, bool) {
	var sum T
	n := a.win.Len()
	if n == 0 {
		return sum, false
	}
	for s := range a.win.All() {
		sum += s
	}
	return sum / T(n), true
}

func (a *Recompute[T]) Latest() (T, bool) {
	return a.win.Newest()
}

func (a *Recompute[T]) Samples() []T {
	return a.win.Slice(make([]T, 0, a.win.Len()))
}

func (a *Recompute[T]) Len() int {
	return a.win.Len()
}

func (a *Recompute[T]) Cap() int {
	return a.win.Cap()
}

func (a *Recompute[T]) Full() bool {
	return a.win.Full()
}
