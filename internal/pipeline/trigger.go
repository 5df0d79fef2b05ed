package pipeline

import "filesync/internal/model"

// Trigger collapses a stream of file events into nudges for the sync loop.
// The output holds a single slot; events arriving while a nudge is already
// pending fold into it, since one cycle picks up any number of changes.
func Trigger(inCh <-chan model.FileEvent) <-chan struct{} {
	outCh := make(chan struct{}, 1)

	go func() {
		defer close(outCh)

		for range inCh {
			select {
			case outCh <- struct{}{}:
			default:
			}
		}
	}()

	return outCh
}
