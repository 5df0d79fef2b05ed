package cmd

import (
	"fmt"

	"filesync/internal/config"
	"filesync/internal/ignore"
	"filesync/internal/logging"
	"filesync/internal/model"
	"filesync/internal/repository"
	"filesync/internal/syncer"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var syncCmd = &cobra.Command{
	Use:   "sync [source] [replica]",
	Short: "Run a single sync cycle and exit",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, replica := args[0], args[1]

		log, closeLog, err := logging.New(effectiveLogPath(cmd), debug)
		if err != nil {
			return err
		}

		defer closeLog()

		matcher, err := ignore.New(cfg.IgnoreList)
		if err != nil {
			return err
		}

		rec, err := syncer.NewReconciler(afero.NewOsFs(), source, replica, log,
			syncer.WithIgnore(matcher))
		if err != nil {
			return err
		}

		actions, err := rec.Sync()
		if err != nil {
			return err
		}

		runID := uuid.NewString()
		for i := range actions {
			actions[i].RunID = runID
			actions[i].Cycle = 1
		}

		repo := repository.NewActionRepository()
		if err := repo.SaveAll(actions); err != nil {
			log.Debug("failed to record actions", zap.Error(err))
		}

		var copied, removed int
		for _, a := range actions {
			if a.Op == model.OpCopy {
				copied++
			} else {
				removed++
			}
		}

		fmt.Printf("done: %d copied, %d removed\n", copied, removed)
		return nil
	},
}

func init() {
	syncCmd.Flags().StringVarP(&logPath, "log", "l", config.Default.LogPath, "Log file path")
	rootCmd.AddCommand(syncCmd)
}
