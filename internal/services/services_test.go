package services

import (
	"testing"
	"time"

	"github.com/SundayYogurt/projecthub/config"
	"github.com/SundayYogurt/projecthub/internal/helper"
	"github.com/SundayYogurt/projecthub/internal/repository"
	"github.com/SundayYogurt/projecthub/internal/testutil"
	"go.uber.org/zap"
)

const testSecret = "test-secret-0123456789abcdef"

type testEnv struct {
	cfg      config.Config
	fx       *testutil.Fixtures
	producer *testutil.RecordingProducer
	codec    helper.TokenCodec

	accounts    *accountService
	projects    ProjectService
	invitations *invitationService
	tasks       *taskService
}

func testConfig() config.Config {
	return config.Config{
		Env:                config.EnvLocal,
		DatabaseDriver:     config.DriverSQLite,
		TokenSecret:        testSecret,
		AccessTokenTTL:     24 * time.Hour,
		ActivationTokenTTL: 24 * time.Hour,
		InvitationTokenTTL: 72 * time.Hour,
		EmailChangeTTL:     24 * time.Hour,
		ResetTokenTTL:      30 * time.Minute,
		UnverifiedMaxAge:   24 * time.Hour,
		SweepInterval:      time.Hour,
		PageSize:           10,
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := testConfig()
	log := zap.NewNop()
	producer := &testutil.RecordingProducer{}
	notifier := NewNotifier(producer, log)
	codec := helper.NewTokenCodec(cfg.TokenSecret)
	auth := helper.SetupAuth(codec, cfg.AccessTokenTTL)

	accountRepo := repository.NewAccountRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	memberRepo := repository.NewMembershipRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	emailRepo := repository.NewEmailChangeRepository(db)

	return &testEnv{
		cfg:         cfg,
		fx:          testutil.NewFixtures(t, db),
		producer:    producer,
		codec:       codec,
		accounts:    NewAccountService(accountRepo, emailRepo, codec, auth, notifier, cfg, log).(*accountService),
		projects:    NewProjectService(projectRepo, memberRepo, log),
		invitations: NewInvitationService(invitationRepo, projectRepo, memberRepo, accountRepo, profileRepo, codec, notifier, cfg, log).(*invitationService),
		tasks:       NewTaskService(taskRepo, projectRepo, memberRepo, log).(*taskService),
	}
}
