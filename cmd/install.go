package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"filesync/internal/autostart"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install [source] [replica]",
	Short: "Register the sync daemon to start on login",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		execPath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to get executable path: %w", err)
		}

		// The service starts from an arbitrary working directory.
		source, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve source: %w", err)
		}

		replica, err := filepath.Abs(args[1])
		if err != nil {
			return fmt.Errorf("failed to resolve replica: %w", err)
		}

		as := autostart.New()
		if err := as.Install(execPath, []string{"run", source, replica}); err != nil {
			return err
		}

		fmt.Println("filesync daemon registered for autostart")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
