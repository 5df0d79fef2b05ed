package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"filesync/internal/model"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	historyN   int
	historyRun string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recently applied sync actions",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := fmt.Sprintf("%s?n=%d", daemonURL("/history"), historyN)
		if historyRun != "" {
			endpoint = fmt.Sprintf("%s?run=%s", daemonURL("/history"), url.QueryEscape(historyRun))
		}

		resp, err := http.Get(endpoint)
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		var actions []model.Action
		if err := json.NewDecoder(resp.Body).Decode(&actions); err != nil {
			return err
		}

		if len(actions) == 0 {
			fmt.Println("no actions yet")
			return nil
		}

		for _, a := range actions {
			size := ""
			if a.Op == model.OpCopy {
				size = fmt.Sprintf(" (%s)", humanize.Bytes(uint64(a.Bytes)))
			}

			fmt.Printf("[%s] %-6s %-6s %s%s\n",
				a.AppliedAt.Format("2006-01-02 15:04:05"),
				a.Op, a.Kind, a.Path, size)
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyN, "n", 20, "number of actions to show")
	historyCmd.Flags().StringVar(&historyRun, "run", "", "show one run's actions in applied order")
	rootCmd.AddCommand(historyCmd)
}
