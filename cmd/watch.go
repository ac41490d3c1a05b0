package cmd

import (
	"context"
	"os"
	"os/signal"
	"syncsweep/internal/daemon"
	"syncsweep/internal/logger"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Watch a tree and resolve conflict files as they appear",
	Args:  cobra.ExactArgs(1),
	RunE:  runDaemon,
}

func runDaemon(cmd *cobra.Command, args []string) error {
	defer logger.Sync()

	sweeper, err := daemon.NewSweeper(args[0], cfg)
	if err != nil {
		return err
	}

	if err := sweeper.Start(); err != nil {
		return err
	}

	srv := daemon.NewServer(sweeper, cfg.DaemonPort)
	srv.Start()

	logger.Log.Info("syncsweep daemon started",
		zap.String("root", args[0]),
		zap.Int("port", cfg.DaemonPort))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Log.Info("shutting down",
			zap.String("signal", sig.String()))
	case <-srv.StopCh():
		logger.Log.Info("stop requested via API")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
