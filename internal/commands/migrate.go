package commands

import (
	"github.com/SundayYogurt/projecthub/config"
	"github.com/SundayYogurt/projecthub/infra/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: withRuntime(func(cmd *cobra.Command, cfg config.Config, log *zap.Logger) error {
		db, err := database.Open(cfg, log)
		if err != nil {
			return err
		}
		defer database.Close(db)
		return database.Migrate(db, log)
	}),
}
