package syncer

import (
	"sync"
	"time"

	"filesync/internal/model"

	"github.com/google/uuid"
)

// State tracks what one loop run has done so far. It is safe for concurrent
// use; the daemon reads snapshots while the loop keeps writing.
type State struct {
	mu        sync.RWMutex
	runID     string
	source    string
	replica   string
	startedAt time.Time
	cycles    int
	copied    int
	removed   int
	bytes     int64
	permFails int
	lastCycle *time.Time
}

func NewState(source, replica string) *State {
	return &State{
		runID:     uuid.NewString(),
		source:    source,
		replica:   replica,
		startedAt: time.Now(),
	}
}

func (s *State) RunID() string {
	return s.runID
}

// RecordCycle counts one completed tick and folds its actions into the run
// totals. Returns the cycle number, starting at 1.
func (s *State) RecordCycle(actions []model.Action) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cycles++
	s.lastCycle = new(time.Now())

	for _, action := range actions {
		switch action.Op {
		case model.OpCopy:
			s.copied++
			s.bytes += action.Bytes
		case model.OpRemove:
			s.removed++
		}
	}

	return s.cycles
}

func (s *State) RecordPermissionFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.permFails++
}

func (s *State) Snapshot() model.LoopSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return model.LoopSnapshot{
		RunID:              s.runID,
		Source:             s.source,
		Replica:            s.replica,
		StartedAt:          s.startedAt,
		Cycles:             s.cycles,
		Copied:             s.copied,
		Removed:            s.removed,
		BytesCopied:        s.bytes,
		PermissionFailures: s.permFails,
		LastCycle:          s.lastCycle,
	}
}
