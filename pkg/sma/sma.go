// Package sma provides simple moving averages over a fixed-size sample
// window, fed one sample at a time.
//
// Each implementation trades per-operation cost against floating point
// accuracy:
//
//	Recompute    Add O(1)      Average O(n)   no drift between queries
//	RunningSum   Add O(1)      Average O(1)   drift may grow with stream length
//	Corrected    Add O(1)*     Average O(1)   drift bounded by resync period
//	SumTree      Add O(log n)  Average O(1)   drift bounded by tree depth
//
// n is the window capacity. *Corrected pays one full O(n) resummation
// every K additions, amortized O(1) for K = n.
package sma

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

var (
	ErrInvalidCapacity = errors.New("sma: window capacity must be at least 1")
	ErrInvalidResync   = errors.New("sma: resync period must be at least 1")
	ErrUnknownStrategy = errors.New("sma: unknown strategy")
)

type Number interface {
	constraints.Integer | constraints.Float
}

// Average is the shared surface of all moving average strategies. The
// bool returned by Average and Latest is false while the window holds
// zero samples; an empty window never reports 0 as a computed mean.
//
// Implementations are not safe for concurrent use. The strategy is
// normally picked once at construction; state is internal and cannot be
// carried across a strategy switch.
type Average[T Number] interface {
	// Add appends a sample, evicting the oldest one once the window
	// is at capacity.
	Add(sample T)
	// Average returns the arithmetic mean of the samples currently in
	// the window.
	Average() (T, bool)
	// Latest returns the most recently added sample.
	Latest() (T, bool)
	// Samples returns the current window contents, oldest first.
	Samples() []T
	Len() int
	Cap() int
	// Full reports whether the window is at capacity.
	Full() bool
}

// New builds a strategy by name, for hosts that pick one at runtime.
func New[T Number](strategy string, capacity int) (Average[T], error) {
	switch strategy {
	case "recompute":
		return NewRecompute[T](capacity)
	case "runningsum":
		return NewRunningSum[T](capacity)
	case "corrected":
		return NewCorrected[T](capacity)
	case "sumtree":
		return NewSumTree[T](capacity)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
}
