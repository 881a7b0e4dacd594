package smoothie

import (
	"fmt"
	"log/slog"

	"github.com/mikesmitty/smoothie/pkg/sma"
	"github.com/mikesmitty/smoothie/pkg/stats"
)

// Smooth feeds each raw sample to the averager and emits the updated
// moving average.
func Smooth(avg sma.Average[float64], input <-chan float64) (<-chan float64, func() error) {
	c := make(chan float64, 1)
	return c, func() error {
		defer close(c)
		for v := range input {
			avg.Add(v)
			mean, ok := avg.Average()
			if !ok {
				continue
			}
			slog.Debug("smoothed", "raw", v, "mean", mean)
			c <- mean
		}
		return nil
	}
}

// Deviation tracks the windowed standard deviation of the raw signal.
// Emits 0 until two samples have arrived.
func Deviation(st *stats.Stats, input <-chan float64) (<-chan float64, func() error) {
	c := make(chan float64, 1)
	return c, func() error {
		defer close(c)
		for v := range input {
			st.Add(v)
			if st.Len() < 2 {
				c <- 0
				continue
			}
			c <- st.StdDev()
		}
		return nil
	}
}

// Printer writes smoothed values to stdout and logs the deviation
// stream, returning once both inputs have drained.
func Printer(smoothChan, stddevChan <-chan float64) func() error {
	return func() error {
		for smoothChan != nil || stddevChan != nil {
			select {
			case v, ok := <-smoothChan:
				if !ok {
					smoothChan = nil
					continue
				}
				fmt.Printf("%0.5f\n", v)
			case v, ok := <-stddevChan:
				if !ok {
					stddevChan = nil
					continue
				}
				slog.Debug("signal noise", "stddev", v)
			}
		}
		return nil
	}
}
