package database

import (
	"fmt"
	"time"

	"github.com/SundayYogurt/projecthub/config"
	"github.com/SundayYogurt/projecthub/internal/domain"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// same value in every process so concurrent deploys migrate one at a time
const migrateLockID int64 = 20260222

// Models lists every table the service owns, in migration order.
func Models() []any {
	return []any{
		&domain.Account{},
		&domain.Profile{},
		&domain.Project{},
		&domain.Membership{},
		&domain.Invitation{},
		&domain.Task{},
		&domain.EmailChangeRequest{},
	}
}

func Open(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         logger.Default.LogMode(logger.Silent),
	}

	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DatabaseDSN,
			PreferSimpleProtocol: true,
		})
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if cfg.DatabaseDriver == config.DriverSQLite {
		// sqlite allows one writer; a single connection keeps transactions serialised
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	log.Info("database connected", zap.String("driver", cfg.DatabaseDriver))
	return db, nil
}

// Migrate runs AutoMigrate. On postgres it holds an advisory lock for the
// duration so only one instance migrates at a time.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
			return fmt.Errorf("migration lock error: %w", err)
		}
		defer func() {
			if err := db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error; err != nil {
				log.Warn("migration unlock failed", zap.Error(err))
			}
		}()
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	log.Info("migration successful")
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
