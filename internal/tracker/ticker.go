package tracker

import (
	"sync"
	"time"
)

// ElapsedTicker invokes a callback with the elapsed whole seconds of an
// active entry on a fixed cadence. It exists only while tracking is running;
// Stop halts it and returns only after the last callback has finished, so no
// callback fires after Stop.
type ElapsedTicker struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartElapsedTicker fires fn immediately and then once per interval. The
// elapsed value is recomputed from the wall clock on every tick.
func StartElapsedTicker(start time.Time, interval time.Duration, fn func(seconds int)) *ElapsedTicker {
	t := &ElapsedTicker{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		fn(int(time.Since(start) / time.Second))
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				fn(int(time.Since(start) / time.Second))
			}
		}
	}()

	return t
}

// Stop cancels the ticker. Safe to call multiple times.
func (t *ElapsedTicker) Stop() {
	t.once.Do(func() { close(t.stop) })
	<-t.done
}
