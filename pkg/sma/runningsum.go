package sma

import (
	"fmt"

	"github.com/mikesmitty/smoothie/pkg/window"
)

// RunningSum maintains the window sum incrementally: each Add folds the
// new sample in and the evicted one out. Both Add and Average are O(1).
//
// For float samples the sum accumulates one rounding step per add, so
// it can drift from a fresh summation over a long stream. Callers that
// need bounded error should use Corrected instead.
type RunningSum[T Number] struct {
	win *window.Window[T]
	sum T
}

func NewRunningSum[T Number](capacity int) (*RunningSum[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	win, err := window.New[T](capacity)
	if err != nil {
		return nil, err
	}
	return &RunningSum[T]{win: win}, nil
}

func (a *RunningSum[T]) Add(sample T) {
	a.sum += sample
	if evicted, ok := a.win.Push(sample); ok {
		a.sum -= evicted
	}
}

func (a *RunningSum[T]) Average() (T, bool) {
	if a.win.Len() == 0 {
		var zero T
		return zero, false
	}
	return a.sum / T(a.win.Len()), true
}

func (a *RunningSum[T]) Latest() (T, bool) {
	return a.win.Newest()
}

func (a *RunningSum[T]) Samples() []T {
	return a.win.Slice(make([]T, 0, a.win.Len()))
}

func (a *RunningSum[T]) Len() int {
	return a.win.Len()
}

func (a *RunningSum[T]) Cap() int {
	return a.win.Cap()
}

func (a *RunningSum[T]) Full() bool {
	return a.win.Full()
}
