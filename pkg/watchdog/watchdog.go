package watchdog

import (
	"fmt"
	"log/slog"
	"time"
)

// NewWatchdog fails the pipeline when the sample stream stalls for
// longer than timeout. A closed input is a normal shutdown, not a
// stall.
func NewWatchdog[T any](timeout time.Duration, input <-chan T) func() error {
	return func() error {
		t := time.NewTimer(timeout)
		defer t.Stop()
		awake := true
		slog.Debug("watchdog started", "timeout", timeout)
		for {
			select {
			case _, ok := <-input:
				if !ok {
					return nil
				}
				awake = true
			case <-t.C:
				if !awake {
					return fmt.Errorf("watchdog: no samples received in %s", timeout)
				}
				awake = false
				t.Reset(timeout)
			}
		}
	}
}
