package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/metrics"
	"github.com/spigell/resume-ranker/internal/ranking"
	"github.com/spigell/resume-ranker/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ranking API over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", server.DefaultConfig().Listen, "address to listen on")

	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
}

func serve() {
	zlog, config := mustLoggerAndConfig()

	zlog.Info("starting the resume-ranker server", zap.String("version", version))

	pretty, _ := json.MarshalIndent(config, "", "  ")
	zlog.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	pipeline := ranking.NewDefault(config.Limits, zlog)
	srv := server.New(config.Server, pipeline, metrics.NewRecorder(nil), nil, zlog)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			zlog.Fatal("http server failed", zap.Error(err))
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}
}
