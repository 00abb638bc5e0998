package flow

import (
	"sync"
	"time"
)

// Clock is the scheduling collaborator. Both methods return a cancel
// func that is safe to call more than once and after the timer fired.
type Clock interface {
	// After runs fn once after d.
	After(d time.Duration, fn func()) (cancel func())
	// Every runs fn repeatedly with period d until cancelled.
	Every(d time.Duration, fn func()) (cancel func())
}

// SystemClock returns a Clock backed by real timers. Callbacks fire on
// their own goroutines; callers serialize their own state.
func SystemClock() Clock { return systemClock{} }

type systemClock struct{}

func (systemClock) After(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	var once sync.Once
	return func() {
		once.Do(func() { t.Stop() })
	}
}

func (systemClock) Every(d time.Duration, fn func()) func() {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
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
