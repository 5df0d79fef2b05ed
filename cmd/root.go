package cmd

import (
	"fmt"
	"os"

	"filesync/internal/config"
	"filesync/internal/db"

	"github.com/spf13/cobra"
)

var (
	cfg   *config.Config
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "filesync",
	Short: "One-way periodic directory tree synchronizer",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		clientCmds := map[string]bool{
			"status": true, "history": true, "stop": true,
			"install": true, "uninstall": true,
		}

		// run and watch open the db themselves, once they hold the
		// instance lock.
		daemonCmds := map[string]bool{"run": true, "watch": true}

		if !clientCmds[cmd.Name()] && !daemonCmds[cmd.Name()] {
			if err := db.Init(cfg.DBPath); err != nil {
				return err
			}
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func daemonURL(path string) string {
	return fmt.Sprintf("http://localhost:%d%s", cfg.DaemonPort, path)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode")
}
