package commands

import (
	"os/signal"
	"syscall"

	"github.com/SundayYogurt/projecthub/config"
	"github.com/SundayYogurt/projecthub/internal/api"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the unverified account sweeper",
	RunE: withRuntime(func(cmd *cobra.Command, cfg config.Config, log *zap.Logger) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return api.StartServer(ctx, cfg, log)
	}),
}
