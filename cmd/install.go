package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"syncsweep/internal/autostart"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install [path]",
	Short: "Register the watch daemon to start on login",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		execPath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to get executable path: %w", err)
		}

		watchPath, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path %s: %w", args[0], err)
		}

		as := autostart.New()
		if err := as.Install(execPath, watchPath); err != nil {
			return err
		}

		fmt.Println("syncsweep daemon registered for autostart")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
