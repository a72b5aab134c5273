package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/SundayYogurt/projecthub/infra/logger"
	"github.com/SundayYogurt/projecthub/mail-svc/config"
	"github.com/SundayYogurt/projecthub/mail-svc/infra/queue"
	"github.com/SundayYogurt/projecthub/mail-svc/internal/handlers"
	"github.com/SundayYogurt/projecthub/mail-svc/internal/services"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// ---------- Load Config ----------
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log = log.Named("mail-svc")

	log.Info("starting",
		zap.String("broker", cfg.KafkaBroker),
		zap.String("topic", cfg.KafkaTopic),
		zap.String("group", cfg.KafkaGroupID),
	)

	// ---------- Init Service ----------
	sender := services.NewSMTPSender(cfg.SMTPHost, cfg.SMTPAddr(), cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom, cfg.MailFromName, cfg.SMTPTimeout)
	mailService, err := services.NewMailService(sender, cfg.APIBaseURL, cfg.FrontendURL, log)
	if err != nil {
		return err
	}

	// ---------- Init Consumer ----------
	handler := handlers.NewMailHandler(mailService, log)
	consumer := queue.NewKafkaConsumer(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaGroupID, cfg.KafkaUsername, cfg.KafkaPassword, handler, log)
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("listening for events")
	return consumer.Listen(ctx)
}
