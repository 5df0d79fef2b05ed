package syncer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"filesync/internal/model"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// ErrTooManyPermissionFailures is returned by Run once permission errors have
// used up the retry budget.
var ErrTooManyPermissionFailures = errors.New("too many permission errors")

// Recorder persists the actions a cycle applied. Implementations must accept
// an empty batch.
type Recorder interface {
	SaveAll(actions []model.Action) error
}

type LoopOptions struct {
	Source   string
	Replica  string
	Interval time.Duration

	// RetryBudget is how many permission-failed cycles are tolerated before
	// Run gives up. Failures accumulate across the whole run unless
	// ResetOnSuccess is set.
	RetryBudget    int
	ResetOnSuccess bool

	Clock    clockwork.Clock
	Recorder Recorder

	// Trigger runs the next cycle early when it fires, without waiting out
	// the interval. Leave nil for pure polling.
	Trigger <-chan struct{}
}

// Loop drives a Syncer on a fixed interval until cancelled. There is exactly
// one cycle in flight at a time; cancellation is observed between cycles and
// during the interval wait, never mid-copy.
type Loop struct {
	syncer Syncer
	log    *zap.Logger
	opts   LoopOptions
	state  *State
}

func NewLoop(s Syncer, log *zap.Logger, opts LoopOptions) *Loop {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}

	if opts.RetryBudget <= 0 {
		opts.RetryBudget = 3
	}

	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	return &Loop{
		syncer: s,
		log:    log,
		opts:   opts,
		state:  NewState(opts.Source, opts.Replica),
	}
}

// Snapshot reports the run's progress so far.
func (l *Loop) Snapshot() model.LoopSnapshot {
	return l.state.Snapshot()
}

// Run cycles the syncer until ctx is cancelled, a non-permission error
// occurs, or the permission retry budget runs out. A clean cancellation
// returns nil.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info("Starting file sync...")

	retries := 0

	for {
		select {
		case <-ctx.Done():
			l.log.Info("Stopping file sync...")
			return nil
		default:
		}

		actions, err := l.syncer.Sync()
		l.record(actions)

		switch {
		case err == nil:
			if l.opts.ResetOnSuccess {
				retries = 0
			}
		case errors.Is(err, fs.ErrPermission):
			retries++
			l.state.RecordPermissionFailure()
			l.log.Info(fmt.Sprintf("Permission denied during sync: %v", err))

			if retries >= l.opts.RetryBudget {
				return fmt.Errorf("%w: %d failed cycles", ErrTooManyPermissionFailures, retries)
			}
		default:
			return fmt.Errorf("sync failed: %w", err)
		}

		select {
		case <-ctx.Done():
			l.log.Info("Stopping file sync...")
			return nil
		case <-l.opts.Clock.After(l.opts.Interval):
		case <-l.opts.Trigger:
		}
	}
}

// record folds the cycle into the run state and hands the actions to the
// recorder. A recorder failure never interrupts syncing.
func (l *Loop) record(actions []model.Action) {
	cycle := l.state.RecordCycle(actions)

	if l.opts.Recorder == nil || len(actions) == 0 {
		return
	}

	for i := range actions {
		actions[i].RunID = l.state.RunID()
		actions[i].Cycle = cycle
	}

	if err := l.opts.Recorder.SaveAll(actions); err != nil {
		l.log.Debug("failed to record actions", zap.Error(err))
	}
}
