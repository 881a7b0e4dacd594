// Package source produces sample streams for the smoothing pipeline,
// each as a channel plus the goroutine that feeds it.
package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// Lines reads one float64 per line from r, skipping blank lines.
// The channel closes when r is exhausted.
func Lines(ctx context.Context, r io.Reader) (<-chan float64, func() error) {
	c := make(chan float64, 1)
	ctx, cancelFunc := context.WithCancel(ctx)
	return c, func() error {
		defer cancelFunc()
		defer close(c)
		done := ctx.Done()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			v, err := strconv.ParseFloat(line, 64)
			if err != nil {
				return fmt.Errorf("source: bad sample %q: %w", line, err)
			}
			slog.Debug("publishing reading", "value", v, "module", "lines")
			select {
			case <-done:
				return nil
			case c <- v:
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("source: %w", err)
		}
		return nil
	}
}

// Synthetic emits a noisy sine wave at the given interval, for demos
// and soak runs without a real signal attached.
func Synthetic(ctx context.Context, interval time.Duration, amplitude, noise float64) (<-chan float64, func() error) {
	c := make(chan float64, 1)
	ctx, cancelFunc := context.WithCancel(ctx)
	return c, func() error {
		defer cancelFunc()
		defer close(c)
		done := ctx.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		start := time.Now()
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				phase := time.Since(start).Seconds()
				v := amplitude*math.Sin(phase) + noise*(2*rand.Float64()-1)
				slog.Debug("publishing reading", "value", v, "module", "synthetic")
				select {
				case <-done:
					return nil
				case c <- v:
				}
			}
		}
	}
}
