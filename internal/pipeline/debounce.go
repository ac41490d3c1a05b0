package pipeline

import (
	"sync"
	"syncsweep/internal/model"
	"time"
)

// Debounce coalesces bursts of events for the same path, emitting only the
// last event once the path has been quiet for delay. A sync tool touching a
// conflict file fires several fs events in quick succession; one sweep per
// burst is enough.
func Debounce(inCh <-chan model.FileEvent, delay time.Duration) <-chan model.FileEvent {
	outCh := make(chan model.FileEvent, cap(inCh))

	go func() {
		defer close(outCh)

		var mu sync.Mutex
		timers := make(map[string]*time.Timer)
		events := make(map[string]model.FileEvent)

		for event := range inCh {
			mu.Lock()
			path := event.Path

			if t, ok := timers[path]; ok {
				t.Stop()
			}

			events[path] = event

			timers[path] = time.AfterFunc(delay, func() {
				mu.Lock()
				pending, ok := events[path]
				delete(timers, path)
				delete(events, path)
				mu.Unlock()

				if ok {
					outCh <- pending
				}
			})
			mu.Unlock()
		}

		// Flush whatever is still pending when the input closes.
		mu.Lock()
		for path, t := range timers {
			if t.Stop() {
				outCh <- events[path]
			}
		}
		mu.Unlock()
	}()

	return outCh
}
