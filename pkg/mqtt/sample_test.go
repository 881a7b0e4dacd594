package mqtt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSampleEveryThird(t *testing.T) {
	s := NewSample(3)
	expected := []bool{false, false, true, false, false, true}
	for i, want := range expected {
		require.Equal(t, want, s.Ready(), "reading %d", i)
	}
}

func TestSampleRateOne(t *testing.T) {
	s := NewSample(1)
	for i := 0; i < 5; i++ {
		require.True(t, s.Ready())
	}
}

func TestSampleRateFloor(t *testing.T) {
	s := NewSample(0)
	require.True(t, s.Ready())
}
