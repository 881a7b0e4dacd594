package sma

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

var strategies = []string{"recompute", "runningsum", "corrected", "sumtree"}

func allVariants(t *testing.T, capacity int) map[string]Average[float64] {
	t.Helper()
	variants := make(map[string]Average[float64], len(strategies))
	for _, name := range strategies {
		avg, err := New[float64](name, capacity)
		require.NoError(t, err)
		variants[name] = avg
	}
	return variants
}

func TestInvalidCapacity(t *testing.T) {
	for _, name := range strategies {
		for _, capacity := range []int{0, -1} {
			_, err := New[float64](name, capacity)
			require.ErrorIs(t, err, ErrInvalidCapacity, "strategy %s capacity %d", name, capacity)
		}
	}
}

func TestInvalidResync(t *testing.T) {
	_, err := NewCorrectedEvery[float64](3, 0)
	require.ErrorIs(t, err, ErrInvalidResync)
}

func TestUnknownStrategy(t *testing.T) {
	_, err := New[float64]("kalman", 3)
	require.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestEmptyWindow(t *testing.T) {
	for name, avg := range allVariants(t, 4) {
		_, ok := avg.Average()
		require.False(t, ok, "strategy %s reported an average for zero samples", name)
		_, ok = avg.Latest()
		require.False(t, ok)
		require.Equal(t, 0, avg.Len())
		require.Equal(t, 4, avg.Cap())
		require.Empty(t, avg.Samples())
	}
}

func TestAverageSequence(t *testing.T) {
	for name, avg := range allVariants(t, 3) {
		expected := []float64{2.0, 3.0, 4.0}
		avg.Add(1)
		avg.Add(2)
		avg.Add(3)
		for i, v := range []float64{4, 5} {
			mean, ok := avg.Average()
			require.True(t, ok)
			require.Equal(t, expected[i], mean, "strategy %s", name)
			avg.Add(v)
		}
		mean, ok := avg.Average()
		require.True(t, ok)
		require.Equal(t, expected[2], mean, "strategy %s", name)
	}
}

func TestPartialWindow(t *testing.T) {
	for name, avg := range allVariants(t, 3) {
		avg.Add(4)
		mean, ok := avg.Average()
		require.True(t, ok)
		require.Equal(t, 4.0, mean, "strategy %s", name)
		require.Equal(t, 1, avg.Len())

		avg.Add(8)
		mean, _ = avg.Average()
		require.Equal(t, 6.0, mean, "strategy %s", name)
		require.Equal(t, 2, avg.Len())

		avg.Add(3)
		mean, _ = avg.Average()
		require.Equal(t, 5.0, mean, "strategy %s", name)

		// Window is full now, older samples start dropping out.
		for _, step := range []struct{ sample, mean float64 }{
			{7, 6}, {11, 7}, {0, 6}, {-23, -4},
		} {
			avg.Add(step.sample)
			mean, _ = avg.Average()
			require.Equal(t, step.mean, mean, "strategy %s", name)
			require.Equal(t, 3, avg.Len())
		}
	}
}

func TestLatestAndSamples(t *testing.T) {
	for name, avg := range allVariants(t, 3) {
		for i := 1.0; i <= 5; i++ {
			avg.Add(i)
		}
		latest, ok := avg.Latest()
		require.True(t, ok, "strategy %s", name)
		require.Equal(t, 5.0, latest)
		require.Equal(t, []float64{3, 4, 5}, avg.Samples(), "strategy %s", name)
	}
}

func TestOccupancyNeverExceedsCapacity(t *testing.T) {
	for name, avg := range allVariants(t, 5) {
		require.False(t, avg.Full())
		for i := 0; i < 17; i++ {
			avg.Add(float64(i))
			require.Equal(t, min(i+1, 5), avg.Len(), "strategy %s", name)
			require.Equal(t, i >= 4, avg.Full(), "strategy %s", name)
		}
	}
}

func TestQueryIdempotent(t *testing.T) {
	for name, avg := range allVariants(t, 4) {
		avg.Add(0.1)
		avg.Add(0.2)
		avg.Add(0.3)
		first, ok := avg.Average()
		require.True(t, ok)
		for i := 0; i < 5; i++ {
			again, ok := avg.Average()
			require.True(t, ok)
			require.Equal(t, first, again, "strategy %s", name)
		}
	}
}

func TestIntegerSamples(t *testing.T) {
	for _, name := range strategies {
		avg, err := New[int](name, 3)
		require.NoError(t, err)

		avg.Add(4)
		avg.Add(8)
		mean, ok := avg.Average()
		require.True(t, ok)
		require.Equal(t, 6, mean, "strategy %s", name)

		// Integer division truncates.
		avg.Add(3)
		mean, _ = avg.Average()
		require.Equal(t, 5, mean, "strategy %s", name)

		avg.Add(7)
		mean, _ = avg.Average()
		require.Equal(t, 6, mean, "strategy %s", name)
	}
}

func TestCrossVariantEquivalence(t *testing.T) {
	const capacity = 50
	rng := rand.New(rand.NewPCG(42, 54))
	variants := allVariants(t, capacity)
	reference := variants["recompute"]

	for i := 0; i < 10000; i++ {
		sample := 20*rng.Float64() - 10
		for _, avg := range variants {
			avg.Add(sample)
		}
		if i%97 != 0 {
			continue
		}
		want, ok := reference.Average()
		require.True(t, ok)
		for name, avg := range variants {
			got, ok := avg.Average()
			require.True(t, ok)
			require.InDelta(t, want, got, 1e-6, "strategy %s diverged at sample %d", name, i)
		}
	}
}

// The corrected and sum tree variants must stay close to a fresh
// recomputation no matter how long the stream runs. The plain running
// sum carries its drift forever and is intentionally not held to this.
func TestDriftBounded(t *testing.T) {
	const capacity = 100
	rng := rand.New(rand.NewPCG(7, 11))

	corrected, err := NewCorrected[float64](capacity)
	require.NoError(t, err)
	tree, err := NewSumTree[float64](capacity)
	require.NoError(t, err)
	reference, err := NewRecompute[float64](capacity)
	require.NoError(t, err)

	for i := 0; i < 100000; i++ {
		sample := 2000*rng.Float64() - 1000
		corrected.Add(sample)
		tree.Add(sample)
		reference.Add(sample)

		if i%2500 != 0 {
			continue
		}
		want, ok := reference.Average()
		require.True(t, ok)
		got, _ := corrected.Average()
		require.InDelta(t, want, got, 1e-7, "corrected drifted at sample %d", i)
		got, _ = tree.Average()
		require.InDelta(t, want, got, 1e-7, "sum tree drifted at sample %d", i)
	}
}

func TestCorrectedResyncClearsDrift(t *testing.T) {
	avg, err := NewCorrectedEvery[float64](4, 2)
	require.NoError(t, err)
	for _, v := range []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6} {
		avg.Add(v)
	}
	// Resync landed on the last add, so the sum is a fresh summation.
	want := (0.3 + 0.4 + 0.5 + 0.6) / 4
	got, ok := avg.Average()
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestCapacityOne(t *testing.T) {
	for name, avg := range allVariants(t, 1) {
		avg.Add(3)
		avg.Add(9)
		mean, ok := avg.Average()
		require.True(t, ok)
		require.Equal(t, 9.0, mean, "strategy %s", name)
		require.Equal(t, 1, avg.Len())
	}
}
