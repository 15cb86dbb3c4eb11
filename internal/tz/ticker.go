package tz

import (
	"sync"
	"time"
)

// StartMinuteTicker invokes fn immediately, then again shortly after each
// upcoming wall-clock minute boundary until the returned stop function is
// called. Ticks are best-effort: a suspended host skips them rather than
// catching up. The stop function is safe to call more than once.
func StartMinuteTicker(fn func()) (stop func()) {
	fn()

	done := make(chan struct{})
	var once sync.Once

	go func() {
		// Small slack past the boundary so the new minute is already visible
		// to formatting code when fn runs.
		wait := time.Until(time.Now().Truncate(time.Minute).Add(time.Minute)) + 10*time.Millisecond
		timer := time.NewTimer(wait)
		defer timer.Stop()

		select {
		case <-done:
			return
		case <-timer.C:
		}
		fn()

		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	return func() {
		once.Do(func() { close(done) })
	}
}
