package smoothie

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mikesmitty/smoothie/pkg/sma"
	"github.com/mikesmitty/smoothie/pkg/stats"
)

func TestSmooth(t *testing.T) {
	avg, err := sma.New[float64]("corrected", 3)
	require.NoError(t, err)

	input := make(chan float64)
	out, fn := Smooth(avg, input)
	done := make(chan error, 1)
	go func() { done <- fn() }()

	for _, step := range []struct{ sample, mean float64 }{
		{1, 1}, {2, 1.5}, {3, 2}, {4, 3}, {5, 4},
	} {
		input <- step.sample
		require.Equal(t, step.mean, <-out)
	}
	close(input)
	require.NoError(t, <-done)
	_, open := <-out
	require.False(t, open)
}

func TestDeviation(t *testing.T) {
	st, err := stats.New(4)
	require.NoError(t, err)

	input := make(chan float64)
	out, fn := Deviation(st, input)
	done := make(chan error, 1)
	go func() { done <- fn() }()

	input <- 5
	require.Equal(t, 0.0, <-out)

	input <- 5
	require.Equal(t, 0.0, <-out)

	input <- 8
	require.Greater(t, <-out, 0.0)

	close(input)
	require.NoError(t, <-done)
}
