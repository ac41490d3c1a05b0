package cmd

import (
	"fmt"
	"syncsweep/internal/repository"

	"github.com/spf13/cobra"
)

var historyN int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recent conflict resolutions",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := repository.NewResolutionRepository()

		resolutions, err := repo.GetRecent(historyN)
		if err != nil {
			return err
		}

		if len(resolutions) == 0 {
			fmt.Println("no history yet")
			return nil
		}

		for _, r := range resolutions {
			status := "✓"
			if r.Status == "FAILED" {
				status = "✗"
			}

			fmt.Printf("%s [%s] %-6s %s\n",
				status,
				r.ResolvedAt.Format("2006-01-02 15:04:05"),
				r.Disposition,
				r.ConflictPath,
			)
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyN, "n", 20, "number of history entries to show")
	rootCmd.AddCommand(historyCmd)
}
