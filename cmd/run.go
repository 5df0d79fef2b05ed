package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"filesync/internal/config"
	"filesync/internal/daemon"
	"filesync/internal/db"
	"filesync/internal/ignore"
	"filesync/internal/logging"
	"filesync/internal/pipeline"
	"filesync/internal/repository"
	"filesync/internal/syncer"
	"filesync/internal/watch"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const debounceDelay = 500 * time.Millisecond

var (
	syncInterval int
	logPath      string
)

var runCmd = &cobra.Command{
	Use:   "run [source] [replica]",
	Short: "Sync source into replica on an interval until stopped",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLoop(cmd, args, false)
	},
}

// runLoop is shared by run and watch; watch additionally feeds filesystem
// events into the loop's trigger channel.
func runLoop(cmd *cobra.Command, args []string, withWatcher bool) error {
	source, replica := args[0], args[1]

	log, closeLog, err := logging.New(effectiveLogPath(cmd), debug)
	if err != nil {
		return err
	}

	defer closeLog()

	lock, err := acquireInstance(cfg.DBPath)
	if err != nil {
		return err
	}

	defer func(l *flock.Flock) {
		_ = l.Unlock()
	}(lock)

	matcher, err := ignore.New(cfg.IgnoreList)
	if err != nil {
		return err
	}

	rec, err := syncer.NewReconciler(afero.NewOsFs(), source, replica, log, syncer.WithIgnore(matcher))
	if err != nil {
		return err
	}

	opts := syncer.LoopOptions{
		Source:         source,
		Replica:        replica,
		Interval:       effectiveInterval(cmd),
		RetryBudget:    cfg.RetryBudget,
		ResetOnSuccess: cfg.ResetRetriesOnSuccess,
		Recorder:       repository.NewActionRepository(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var w *watch.Watcher
	if withWatcher {
		w, err = watch.New(log, cfg.BufferSize)
		if err != nil {
			return err
		}

		if err := w.Watch(source); err != nil {
			return err
		}

		// Watcher events carry absolute paths.
		absSource, absErr := filepath.Abs(source)
		if absErr != nil {
			return fmt.Errorf("failed to resolve source: %w", absErr)
		}

		events := pipeline.Debounce(w.Events(), debounceDelay)
		events = pipeline.Filter(events, absSource, matcher)
		opts.Trigger = pipeline.Trigger(events)
	}

	loop := syncer.NewLoop(rec, log, opts)

	g, ctx := errgroup.WithContext(ctx)

	if cfg.DaemonPort > 0 {
		srv := daemon.NewServer(loop, log, cfg.DaemonPort)
		srv.Start()

		g.Go(func() error {
			select {
			case <-srv.StopCh():
				stop()
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Stop(shutdownCtx)
		})
	}

	if w != nil {
		g.Go(func() error {
			<-ctx.Done()
			w.Stop()
			return nil
		})
	}

	g.Go(func() error {
		return loop.Run(ctx)
	})

	return g.Wait()
}

// acquireInstance takes the single-instance lock before opening the action
// db; a losing instance must not touch the db file.
func acquireInstance(dbPath string) (*flock.Flock, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	lock := flock.New(dbPath + ".lock")

	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire instance lock: %w", err)
	}

	if !locked {
		return nil, fmt.Errorf("another instance is already running against %s", dbPath)
	}

	if err := db.Init(dbPath); err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	return lock, nil
}

// Flags fall back to the config file values when not given explicitly.
func effectiveInterval(cmd *cobra.Command) time.Duration {
	if cmd.Flags().Changed("time") {
		return time.Duration(syncInterval) * time.Second
	}

	return time.Duration(cfg.Interval) * time.Second
}

func effectiveLogPath(cmd *cobra.Command) string {
	if cmd.Flags().Changed("log") {
		return logPath
	}

	return cfg.LogPath
}

func init() {
	runCmd.Flags().IntVarP(&syncInterval, "time", "t", config.Default.Interval, "Sync interval in seconds")
	runCmd.Flags().StringVarP(&logPath, "log", "l", config.Default.LogPath, "Log file path")
	rootCmd.AddCommand(runCmd)
}
