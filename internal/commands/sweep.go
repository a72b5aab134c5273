package commands

import (
	"time"

	"github.com/SundayYogurt/projecthub/config"
	"github.com/SundayYogurt/projecthub/infra/database"
	"github.com/SundayYogurt/projecthub/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete accounts that were never activated",
	Long:  "Deletes unverified accounts older than UNVERIFIED_ACCOUNT_MAX_AGE once and exits. Meant for cron when the server runs with several replicas.",
	RunE: withRuntime(func(cmd *cobra.Command, cfg config.Config, log *zap.Logger) error {
		db, err := database.Open(cfg, log)
		if err != nil {
			return err
		}
		defer database.Close(db)

		cutoff := time.Now().UTC().Add(-cfg.UnverifiedMaxAge)
		n, err := repository.NewAccountRepository(db).DeleteUnverifiedBefore(cmd.Context(), cutoff)
		if err != nil {
			return err
		}
		log.Info("sweep finished", zap.Int64("deleted", n), zap.Time("cutoff", cutoff))
		cmd.Printf("deleted %d unverified account(s)\n", n)
		return nil
	}),
}
