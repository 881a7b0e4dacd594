package sma

import (
	"fmt"

	"github.com/mikesmitty/smoothie/pkg/window"
)

// Corrected is a RunningSum that resummates the window from scratch
// every K additions, discarding whatever drift the incremental sum has
// picked up. Between resyncs it behaves exactly like RunningSum, so the
// worst-case error is K rounding steps regardless of how long the
// stream runs. K defaults to the window capacity, which keeps Add
// amortized O(1).
type Corrected[T Number] struct {
	win    *window.Window[T]
	sum    T
	resync int
	since  int
}

func NewCorrected[T Number](capacity int) (*Corrected[T], error) {
	return NewCorrectedEvery[T](capacity, capacity)
}

// NewCorrectedEvery sets the resync period explicitly. Smaller periods
// buy tighter error bounds with more frequent O(capacity) resummation.
func NewCorrectedEvery[T Number](capacity, resync int) (*Corrected[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	if resync < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidResync, resync)
	}
	win, err := window.New[T](capacity)
	if err != nil {
		return nil, err
	}
	return &Corrected[T]{win: win, resync: resync}, nil
}

func (a *Corrected[T]) Add(sample T) {
	a.sum += sample
	if evicted, ok := a.win.Push(sample); ok {
		a.sum -= evicted
	}
	a.since++
	if a.since >= a.resync {
		a.since = 0
		var sum T
		for s := range a.win.All() {
			sum += s
		}
		a.sum = sum
	}
}

func (a *Corrected[T]) Average() (T, bool) {
	if a.win.Len() == 0 {
		var zero T
		return zero, false
	}
	return a.sum / T(a.win.Len()), true
}

func (a *Corrected[T]) Latest() (T, bool) {
	return a.win.Newest()
}

func (a *Corrected[T]) Samples() []T {
	return a.win.Slice(make([]T, 0, a.win.Len()))
}

func (a *Corrected[T]) Len() int {
	return a.win.Len()
}

func (a *Corrected[T]) Cap() int {
	return a.win.Cap()
}

func (a *Corrected[T]) Full() bool {
	return a.win.Full()
}
