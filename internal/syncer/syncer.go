// Package syncer converges a replica directory tree toward a source tree and
// drives that reconciliation on a fixed interval.
package syncer

import "filesync/internal/model"

// Syncer runs one full reconciliation pass. A pass that fails partway still
// returns the actions it managed to apply before the error.
type Syncer interface {
	Sync() ([]model.Action, error)
}
