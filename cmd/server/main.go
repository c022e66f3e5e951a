// Command contacthub-server starts the contacts REST API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/avolodin/contacthub/internal/config"
	"github.com/avolodin/contacthub/internal/dispatch"
	"github.com/avolodin/contacthub/internal/limiter"
	"github.com/avolodin/contacthub/internal/mailer"
	"github.com/avolodin/contacthub/internal/migrate"
	"github.com/avolodin/contacthub/internal/repository/postgres"
	httpserver "github.com/avolodin/contacthub/internal/server/http"
	"github.com/avolodin/contacthub/internal/service"
	"github.com/avolodin/contacthub/internal/token"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main parses configuration, runs migrations, and starts the HTTP server.
func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Addr),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// DB pool
	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("pgxpool.New", zap.Error(err))
	}
	defer pool.Close()

	// Repositories
	db := &postgres.DB{Pool: pool}
	userRepo := postgres.NewUserRepo(db)
	contactRepo := postgres.NewContactRepo(db)
	noteRepo := postgres.NewNoteRepo(db)

	lim := limiter.NewPG(pool, 15*time.Minute, 5, 15*time.Minute)

	codec := token.New([]byte(cfg.JWTKey))

	notifier, err := mailer.NewSMTP(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		FromName: cfg.MailFromName,
	}, codec, cfg.EmailTokenTTL, logger)
	if err != nil {
		logger.Fatal("mailer", zap.Error(err))
	}

	tasks := dispatch.New(64, 30*time.Second, logger)
	defer tasks.Close()

	// Services
	authSvc := service.NewAuthService(userRepo, codec, notifier, tasks, lim, cfg.AccessTTL, cfg.RefreshTTL)
	contactSvc := service.NewContactService(contactRepo)
	noteSvc := service.NewNoteService(noteRepo)

	app := httpserver.New(authSvc, contactSvc, noteSvc, userRepo, codec, cfg.BaseURL, logger)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router(cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
