package cmd

import (
	"fmt"
	"os"
	"syncsweep/internal/conflict"
	"syncsweep/internal/logger"
	"syncsweep/internal/report"
	"syncsweep/internal/repository"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRun    bool
	backupDir string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [path]",
	Short: "Scan a tree once and resolve every conflict group",
	Long: `Scan a tree for sync-conflict files, keep the newest version of each
conflicting file and dispose of the rest. The winner is renamed onto the
original path, overwriting it permanently. Losers are deleted, or moved into
the backup directory when one is configured.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()
		root := args[0]

		backup := cfg.BackupDir
		if cmd.Flags().Changed("backup-dir") {
			backup = backupDir
		}

		scanner := conflict.NewScanner(cfg.IgnoreList, backup)
		records, err := scanner.Scan(root)
		if err != nil {
			return err
		}

		resolver := conflict.NewResolver(backup)
		groups, plans := resolver.Resolve(records)

		// The table goes out before anything is touched, so dry-run
		// output and live output match.
		report.NewTable(os.Stdout).Print(plans)

		logger.Log.Info("resolution planned",
			zap.Int("conflicts", len(records)),
			zap.Int("groups", len(groups)))

		executor := conflict.NewExecutor(dryRun, backup)
		results := executor.Apply(plans)

		if dryRun {
			fmt.Println("dry run: no changes made")
			return nil
		}

		repo := repository.NewResolutionRepository()

		var applied, skipped, failed int
		for _, r := range results {
			if err := repo.Save(r); err != nil {
				logger.Log.Warn("failed to save history",
					zap.Error(err))
			}

			switch {
			case r.Err != nil:
				failed++
			case r.Skipped:
				skipped++
			default:
				applied++
			}
		}

		fmt.Printf("done: %d applied, %d skipped, %d failed\n", applied, skipped, failed)
		return nil
	},
}

func init() {
	resolveCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without making any changes")
	resolveCmd.Flags().StringVar(&backupDir, "backup-dir", "", "Move losing versions here instead of deleting them")
	rootCmd.AddCommand(resolveCmd)
}
