// @title ProjectHub API
// @version 1.0
// @description Accounts, projects, invitations and tasks.
// @BasePath /
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer <JWT>

package api

import (
	"context"
	"errors"
	"time"

	"github.com/SundayYogurt/projecthub/config"
	"github.com/SundayYogurt/projecthub/infra/database"
	"github.com/SundayYogurt/projecthub/infra/queue"
	"github.com/SundayYogurt/projecthub/internal/api/rest/handlers"
	"github.com/SundayYogurt/projecthub/internal/api/rest/middleware"
	"github.com/SundayYogurt/projecthub/internal/helper"
	"github.com/SundayYogurt/projecthub/internal/helper/utils"
	"github.com/SundayYogurt/projecthub/internal/interfaces"
	"github.com/SundayYogurt/projecthub/internal/repository"
	"github.com/SundayYogurt/projecthub/internal/services"
	"github.com/SundayYogurt/projecthub/pkg/cloudinary"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Dependencies are the outside resources the HTTP app is built on.
// Uploader may be nil.
type Dependencies struct {
	Config   config.Config
	DB       *gorm.DB
	Producer interfaces.ProducerHandler
	Uploader interfaces.Uploader
	Log      *zap.Logger
}

// App is the wired HTTP application plus the services background jobs need.
type App struct {
	Fiber    *fiber.App
	Accounts services.AccountService
}

func NewApp(deps Dependencies) *App {
	cfg, log := deps.Config, deps.Log

	app := fiber.New(fiber.Config{
		AppName:      "projecthub",
		ErrorHandler: errorHandler(log),
		BodyLimit:    int(cfg.AvatarMaxUploadSize) + 1<<20,
	})
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: cfg.BaseURL != "*",
	}))
	RegisterSwagger(app)

	codec := helper.NewTokenCodec(cfg.TokenSecret)
	auth := helper.SetupAuth(codec, cfg.AccessTokenTTL)
	notifier := services.NewNotifier(deps.Producer, log.Named("notifier"))

	// ---------- Repositories ----------
	accountRepo := repository.NewAccountRepository(deps.DB)
	profileRepo := repository.NewProfileRepository(deps.DB)
	projectRepo := repository.NewProjectRepository(deps.DB)
	memberRepo := repository.NewMembershipRepository(deps.DB)
	invitationRepo := repository.NewInvitationRepository(deps.DB)
	taskRepo := repository.NewTaskRepository(deps.DB)
	emailChangeRepo := repository.NewEmailChangeRepository(deps.DB)

	// ---------- Services ----------
	accountSvc := services.NewAccountService(accountRepo, emailChangeRepo, codec, auth, notifier, cfg, log)
	profileSvc := services.NewProfileService(accountRepo, profileRepo, deps.Uploader, log)
	projectSvc := services.NewProjectService(projectRepo, memberRepo, log)
	invitationSvc := services.NewInvitationService(invitationRepo, projectRepo, memberRepo, accountRepo, profileRepo, codec, notifier, cfg, log)
	taskSvc := services.NewTaskService(taskRepo, projectRepo, memberRepo, log)

	// ---------- Handlers ----------
	v1 := app.Group("/api/v1")
	authMw := middleware.AuthMiddleware(auth)
	handlers.NewAccountHandler(accountSvc, profileSvc, cfg, log).SetupRoutes(v1, authMw)
	handlers.NewProjectHandler(projectSvc, invitationSvc, cfg, log).SetupRoutes(v1, authMw)
	handlers.NewTaskHandler(taskSvc, cfg, log).SetupRoutes(v1, authMw)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return &App{Fiber: app, Accounts: accountSvc}
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.ResponseError(ctx, fe.Code, fe.Message)
		}
		log.Error("unhandled error", zap.String("path", ctx.Path()), zap.Error(err))
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "internal server error")
	}
}

// StartServer connects the database, broker and uploader, runs the
// unverified account sweeper and serves until ctx is cancelled.
func StartServer(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	db, err := database.Open(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("database close", zap.Error(err))
		}
	}()
	if err := database.Migrate(db, log); err != nil {
		return err
	}

	log.Info("kafka", zap.String("broker", cfg.KafkaBroker), zap.String("topic", cfg.KafkaTopic))
	producer := queue.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaUsername, cfg.KafkaPassword, log.Named("producer"))
	defer producer.Close()

	var uploader interfaces.Uploader
	if cld, err := cloudinary.New(cfg.CloudinaryURL); err != nil {
		log.Warn("avatar uploads disabled", zap.Error(err))
	} else {
		uploader = cloudinary.NewCloudinaryUploader(cld)
	}

	app := NewApp(Dependencies{
		Config:   cfg,
		DB:       db,
		Producer: producer,
		Uploader: uploader,
		Log:      log,
	})

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go services.RunSweeper(sweepCtx, app.Accounts, cfg.SweepInterval, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.ServerPort))
		errCh <- app.Fiber.Listen(cfg.ServerPort)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	return app.Fiber.ShutdownWithTimeout(shutdownTimeout)
}
