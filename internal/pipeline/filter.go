package pipeline

import (
	"path/filepath"

	"filesync/internal/ignore"
	"filesync/internal/model"
)

// Filter drops events for ignored paths. Event paths are made relative to
// root before matching, so patterns see the same shape the syncer does.
func Filter(inCh <-chan model.FileEvent, root string, m *ignore.Matcher) <-chan model.FileEvent {
	outCh := make(chan model.FileEvent, cap(inCh))

	go func() {
		defer close(outCh)

		for event := range inCh {
			rel, err := filepath.Rel(root, event.Path)
			if err != nil {
				rel = event.Path
			}

			if m.Match(rel) {
				continue
			}

			outCh <- event
		}
	}()

	return outCh
}
