package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"filesync/internal/model"
	"filesync/internal/repository"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "View the running sync loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(daemonURL("/status"))
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		var result struct {
			Run   model.LoopSnapshot `json:"run"`
			Total repository.Stats   `json:"total"`
		}

		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("failed to decode status response: %w", err)
		}

		snap := result.Run

		lastCycle := "-"
		if snap.LastCycle != nil {
			lastCycle = snap.LastCycle.Format("2006-01-02 15:04:05")
		}

		uptime := time.Since(snap.StartedAt).Round(time.Second)

		fmt.Printf("%-26s %-26s %-8s %-8s %-8s %-10s %s\n",
			"SOURCE", "REPLICA", "CYCLES", "COPIED", "REMOVED", "BYTES", "LAST CYCLE")
		fmt.Printf("%-26s %-26s %-8d %-8d %-8d %-10s %s\n",
			snap.Source, snap.Replica, snap.Cycles, snap.Copied, snap.Removed,
			humanize.Bytes(uint64(snap.BytesCopied)), lastCycle)
		fmt.Printf("       uptime: %s, run: %s, permission failures: %d\n",
			uptime, snap.RunID, snap.PermissionFailures)
		fmt.Printf("all-time: %d copied, %d removed\n",
			result.Total.Copied, result.Total.Removed)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
