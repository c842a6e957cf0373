package timer

import (
	"sync"
	"time"
)

// Clock abstracts wall-clock reads and the per-second tick schedule so the
// engine can run against a simulated clock in tests.
type Clock interface {
	Now() time.Time
	// EverySecond invokes fn once per second until the returned cancel
	// function is called. Cancel is safe to call more than once.
	EverySecond(fn func()) (cancel func())
}

type systemClock struct{}

// SystemClock ticks on real wall-clock time. It does not correct for
// scheduling drift; a starved goroutine may fire late ticks in a burst.
var SystemClock Clock = systemClock{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) EverySecond(fn func()) func() {
	ticker := time.NewTicker(time.Second)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}
