package cmd

import (
	"filesync/internal/config"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [source] [replica]",
	Short: "Run the sync loop with filesystem events triggering extra cycles",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLoop(cmd, args, true)
	},
}

func init() {
	watchCmd.Flags().IntVarP(&syncInterval, "time", "t", config.Default.Interval, "Sync interval in seconds")
	watchCmd.Flags().StringVarP(&logPath, "log", "l", config.Default.LogPath, "Log file path")
	rootCmd.AddCommand(watchCmd)
}
