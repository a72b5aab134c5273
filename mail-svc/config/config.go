package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env string `env:"ENV" env-default:"dev"`

	KafkaBroker   string `env:"KAFKA_BROKER" env-required:"true"`
	KafkaTopic    string `env:"KAFKA_TOPIC" env-default:"projecthub.mail"`
	KafkaGroupID  string `env:"KAFKA_GROUP_ID" env-default:"projecthub-mail"`
	KafkaUsername string `env:"KAFKA_USERNAME"`
	KafkaPassword string `env:"KAFKA_PASSWORD"`

	SMTPHost     string        `env:"SMTP_HOST" env-default:"smtp.gmail.com"`
	SMTPPort     int           `env:"SMTP_PORT" env-default:"587"`
	SMTPUser     string        `env:"SMTP_USER"`
	SMTPPassword string        `env:"SMTP_PASSWORD"`
	SMTPTimeout  time.Duration `env:"SMTP_TIMEOUT" env-default:"15s"`
	MailFrom     string        `env:"MAIL_FROM" env-default:"no-reply@projecthub.local"`
	MailFromName string        `env:"MAIL_FROM_NAME" env-default:"ProjectHub"`

	// APIBaseURL is where activation and invitation links point; the
	// reset link goes to the frontend, which posts the new password.
	APIBaseURL  string `env:"API_BASE_URL" env-default:"http://localhost:3000"`
	FrontendURL string `env:"FRONTEND_URL" env-default:"http://localhost:5173"`
}

func LoadConfig() (Config, error) {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: .env not loaded:", err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}

func (c Config) SMTPAddr() string {
	return fmt.Sprintf("%s:%d", c.SMTPHost, c.SMTPPort)
}
