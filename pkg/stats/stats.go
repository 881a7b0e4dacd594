package stats

import (
	"slices"

	"github.com/mikesmitty/smoothie/pkg/window"
	"gonum.org/v1/gonum/stat"
)

// Stats keeps windowed diagnostics over the same stream the averager
// sees, for judging how noisy the raw signal is relative to the
// smoothed one.
type Stats struct {
	win *window.Window[float64]
	buf []float64
}

func New(size int) (*Stats, error) {
	win, err := window.New[float64](size)
	if err != nil {
		return nil, err
	}
	return &Stats{
		win: win,
		buf: make([]float64, 0, size),
	}, nil
}

func (s *Stats) Add(value float64) {
	s.win.Push(value)
}

func (s *Stats) Len() int {
	return s.win.Len()
}

func (s *Stats) values() []float64 {
	s.buf = s.win.Slice(s.buf[:0])
	return s.buf
}

func (s *Stats) Mean() float64 {
	return stat.Mean(s.values(), nil)
}

func (s *Stats) StdDev() float64 {
	return stat.StdDev(s.values(), nil)
}

// Quantile reports the empirical quantile of the windowed values.
func (s *Stats) Quantile(pct float64) float64 {
	vals := s.values()
	slices.Sort(vals)
	return stat.Quantile(pct, stat.Empirical, vals, nil)
}
