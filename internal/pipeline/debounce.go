// Package pipeline shapes watcher events before they reach the sync loop:
// debouncing rapid rewrites, dropping ignored paths and collapsing what is
// left into cycle triggers.
package pipeline

import (
	"sync"
	"time"

	"filesync/internal/model"
)

// Debounce holds each path's latest event back until the path has been quiet
// for delay, so editors that write in bursts produce one event instead of
// many. Pending events are flushed when the input closes.
func Debounce(inCh <-chan model.FileEvent, delay time.Duration) <-chan model.FileEvent {
	outCh := make(chan model.FileEvent, cap(inCh))

	go func() {
		defer close(outCh)

		var (
			mu      sync.Mutex
			wg      sync.WaitGroup
			timers  = make(map[string]*time.Timer)
			pending = make(map[string]model.FileEvent)
		)

		for event := range inCh {
			path := event.Path

			mu.Lock()
			if t, ok := timers[path]; ok && t.Stop() {
				wg.Done()
			}

			pending[path] = event

			wg.Add(1)
			timers[path] = time.AfterFunc(delay, func() {
				defer wg.Done()

				mu.Lock()
				ev, ok := pending[path]
				delete(timers, path)
				delete(pending, path)
				mu.Unlock()

				if ok {
					outCh <- ev
				}
			})
			mu.Unlock()
		}

		mu.Lock()
		for path, t := range timers {
			if t.Stop() {
				outCh <- pending[path]
				wg.Done()
			}
		}
		mu.Unlock()

		wg.Wait()
	}()

	return outCh
}
