package commands

import (
	"github.com/SundayYogurt/projecthub/config"
	"github.com/SundayYogurt/projecthub/infra/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
)

var rootCmd = &cobra.Command{
	Use:           "projecthub",
	Short:         "Project and task collaboration backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// withRuntime loads configuration and a logger before running fn.
func withRuntime(fn func(cmd *cobra.Command, cfg config.Config, log *zap.Logger) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		log, err := logger.New(cfg.Env)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		log = log.With(zap.String("version", version), zap.String("commit", commit))
		return fn(cmd, cfg, log)
	}
}

func SetVersion(v, c string) {
	version = v
	commit = c
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(sweepCmd)
}
