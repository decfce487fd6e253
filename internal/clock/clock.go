// Package clock schedules delayed and repeating callbacks. Game sessions use
// it for the match-evaluation pause and the one-second timer so tests can
// drive time by hand.
package clock

import (
	"sync"
	"time"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop cancels the callback. It reports whether the call prevented a
	// pending run; stopping twice is harmless.
	Stop() bool
}

// Scheduler runs callbacks after a delay or on a fixed interval.
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
	Every(d time.Duration, fn func()) Timer
}

// Real schedules on the wall clock.
type Real struct{}

// NewReal returns a wall-clock scheduler.
func NewReal() Real { return Real{} }

func (Real) After(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

func (Real) Every(d time.Duration, fn func()) Timer {
	t := &ticker{stop: make(chan struct{})}
	tk := time.NewTicker(d)
	go func() {
		defer tk.Stop()
		for {
			select {
			case <-tk.C:
				fn()
			case <-t.stop:
				return
			}
		}
	}()
	return t
}

type ticker struct {
	once sync.Once
	stop chan struct{}
}

func (t *ticker) Stop() bool {
	stopped := false
	t.once.Do(func() {
		close(t.stop)
		stopped = true
	})
	return stopped
}
