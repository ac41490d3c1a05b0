package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"syncsweep/internal/daemon"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "View watch daemon status",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(daemonURL("/status"))
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		var result struct {
			Sweeper daemon.Snapshot `json:"sweeper"`
			Total   int64           `json:"total"`
		}

		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("failed to decode status response: %w", err)
		}

		snap := result.Sweeper

		lastSweep := "-"
		if snap.LastSweep != nil {
			lastSweep = snap.LastSweep.Format("2006-01-02 15:04:05")
		}

		backup := snap.BackupDir
		if backup == "" {
			backup = "(delete losers)"
		}

		uptime := time.Since(snap.StartedAt).Round(time.Second)

		fmt.Printf("watching:   %s\n", snap.Root)
		fmt.Printf("backup dir: %s\n", backup)
		fmt.Printf("uptime:     %s\n", uptime)
		fmt.Printf("sweeps:     %d (last: %s)\n", snap.Sweeps, lastSweep)
		fmt.Printf("actions:    %d applied, %d skipped, %d failed\n",
			snap.Applied, snap.Skipped, snap.Failed)
		fmt.Printf("recorded:   %d resolutions total\n", result.Total)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
