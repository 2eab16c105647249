package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sefazor/eventos-backend/internal/config"
	"github.com/sefazor/eventos-backend/internal/handler"
	"github.com/sefazor/eventos-backend/internal/i18n"
	"github.com/sefazor/eventos-backend/internal/repository"
	"github.com/sefazor/eventos-backend/internal/service"
	"github.com/sefazor/eventos-backend/internal/session"
	"github.com/sefazor/eventos-backend/pkg/database"
	"github.com/sefazor/eventos-backend/pkg/email"
	jwtPkg "github.com/sefazor/eventos-backend/pkg/jwt"
	"github.com/sefazor/eventos-backend/pkg/logger"
	"github.com/sefazor/eventos-backend/pkg/qrcode"
	"github.com/sefazor/eventos-backend/pkg/storage"
	"github.com/sefazor/eventos-backend/pkg/utils"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
}

// bootstrap loads config, the logger and a migrated database.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := database.Open(cfg.DBDriver, cfg.DatabaseURL, log)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, nil, nil, err
	}

	return cfg, log, db, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck
	defer database.Close(db) //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions, closeSessions, err := session.NewStore(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	defer closeSessions() //nolint:errcheck
	if cfg.RedisURL == "" {
		log.Warn("REDIS_URL not set, revoked sessions are kept in memory")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	// Email service
	var mailer service.Mailer = service.NoopMailer{}
	if cfg.Email.Enabled() {
		mailer = email.NewEmailService(cfg.Email, log)
	} else {
		log.Info("email delivery disabled")
	}

	// Roster storage
	var store storage.ObjectStore
	if cfg.R2.Enabled() {
		r2, err := storage.NewR2Storage(ctx, cfg.R2, log.Named("storage"))
		if err != nil {
			return err
		}
		store = r2
	} else {
		log.Info("roster export disabled, R2 is not configured")
	}

	validator := utils.NewValidator()
	tokens := jwtPkg.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)

	// Services
	authService := service.NewAuthService(userRepo, tokens, sessions, mailer, validator, log)
	userService := service.NewUserService(userRepo, validator, log)
	eventService := service.NewEventService(eventRepo, enrollmentRepo, validator, log)
	enrollmentService := service.NewEnrollmentService(eventRepo, enrollmentRepo, userRepo, mailer, qrcode.NewQRService(cfg.TicketBaseURL), log)
	rosterService := service.NewRosterService(eventRepo, enrollmentRepo, store, log)

	app := handler.NewApp(handler.Deps{
		DB:          db,
		Auth:        authService,
		Users:       userService,
		Events:      eventService,
		Enrollments: enrollmentService,
		Rosters:     rosterService,
		Translator:  i18n.NewTranslator(cfg.DefaultLocale, log),
		Log:         log,
	}, handler.RouterConfig{
		CORSOrigins:  cfg.CORSOrigins,
		RateLimitMax: cfg.RateLimitMax,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("port", cfg.Port), zap.String("driver", cfg.DBDriver))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
