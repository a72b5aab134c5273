package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is built once at startup and handed to constructors by value.
// Nothing in the service reads the process environment after LoadConfig returns.
type Config struct {
	Env         string `env:"ENV" env-default:"dev"`
	ServerPort  string `env:"SERVER_PORT" env-default:":3000"`
	BaseURL     string `env:"BASE_URL" env-default:"*"`
	FrontendURL string `env:"FRONTEND_URL" env-default:"http://localhost:3000"`

	DatabaseDriver string `env:"DB_DRIVER" env-default:"postgres"`
	DatabaseDSN    string `env:"DATABASE_DSN" env-required:"true"`

	KafkaBroker   string `env:"KAFKA_BROKER"`
	KafkaTopic    string `env:"KAFKA_TOPIC" env-default:"projecthub.mail"`
	KafkaUsername string `env:"KAFKA_USERNAME"`
	KafkaPassword string `env:"KAFKA_PASSWORD"`

	TokenSecret         string        `env:"TOKEN_SECRET" env-required:"true"`
	AccessTokenTTL      time.Duration `env:"ACCESS_TOKEN_TTL" env-default:"24h"`
	ActivationTokenTTL  time.Duration `env:"ACTIVATION_TOKEN_TTL" env-default:"24h"`
	InvitationTokenTTL  time.Duration `env:"INVITATION_TOKEN_TTL" env-default:"72h"`
	EmailChangeTTL      time.Duration `env:"EMAIL_CHANGE_TTL" env-default:"24h"`
	ResetTokenTTL       time.Duration `env:"RESET_TOKEN_TTL" env-default:"30m"`
	UnverifiedMaxAge    time.Duration `env:"UNVERIFIED_ACCOUNT_MAX_AGE" env-default:"24h"`
	SweepInterval       time.Duration `env:"SWEEP_INTERVAL" env-default:"1h"`
	PageSize            int           `env:"PAGE_SIZE" env-default:"10"`
	MailFrom            string        `env:"MAIL_FROM" env-default:"no-reply@projecthub.local"`
	MailFromName        string        `env:"MAIL_FROM_NAME" env-default:"ProjectHub"`
	CloudinaryURL       string        `env:"CLOUDINARY_URL"`
	AvatarMaxUploadSize int64         `env:"AVATAR_MAX_UPLOAD_SIZE" env-default:"5242880"`
}

func LoadConfig() (Config, error) {
	if os.Getenv("ENV") != EnvProd {
		// .env is a dev convenience; real deployments inject the environment
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: env file not found or could not be loaded:", err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DatabaseDriver)
	}
	if len(c.TokenSecret) < 16 {
		return fmt.Errorf("TOKEN_SECRET must be at least 16 characters")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive")
	}
	if c.InvitationTokenTTL <= 0 || c.ActivationTokenTTL <= 0 || c.AccessTokenTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}
	return nil
}

func (c Config) IsProd() bool {
	return c.Env == EnvProd
}
