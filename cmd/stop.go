package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running sync loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Post(daemonURL("/stop"), "application/json", nil)
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		var ack struct {
			Status string `json:"status"`
		}

		if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
			return fmt.Errorf("failed to decode stop response: %w", err)
		}

		fmt.Printf("daemon %s\n", ack.Status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
