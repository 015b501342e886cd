package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/voxlate/voxlate/internal/api/handlers"
	"github.com/voxlate/voxlate/internal/api/router"
	"github.com/voxlate/voxlate/internal/config"
	"github.com/voxlate/voxlate/internal/pkg/logger"
	"github.com/voxlate/voxlate/internal/pkg/validator"
	"github.com/voxlate/voxlate/internal/providers"
	"github.com/voxlate/voxlate/internal/repository/sqlite"
	"github.com/voxlate/voxlate/internal/services"
	"github.com/voxlate/voxlate/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	exchangeRepo := sqlite.NewExchangeRepository(db)

	provider := providers.NewOpenAIProvider(cfg.OpenAI, log)

	// One lock registry for every service that writes the user row.
	userLocks := services.NewUserLocks()

	userService := services.NewUserService(userRepo, userLocks, log)
	quotaService := services.NewQuotaService(userRepo, cfg.Quota, userLocks, log)
	sessionService := services.NewSessionService(userRepo, cfg.Session.TTL, userLocks, log)
	translationService := services.NewTranslationService(provider, log)

	val := validator.New()

	h := &router.Handlers{
		Health:    handlers.NewHealthHandler(db, log),
		Auth:      handlers.NewAuthHandler(userService, cfg, log, val),
		Translate: handlers.NewTranslateHandler(translationService, userService, quotaService, sessionService, exchangeRepo, cfg, log),
		Session:   handlers.NewSessionHandler(sessionService, log, val),
		Settings:  handlers.NewSettingsHandler(userService, log, val),
		Account:   handlers.NewAccountHandler(userService, quotaService, exchangeRepo, log, val),
		Synthesis: handlers.NewSynthesizeHandler(provider, log, val),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := worker.NewSessionSweeper(userRepo, cfg.Session.SweepSchedule, log)
	if err := sweeper.Start(ctx); err != nil {
		log.Fatalf("Failed to start session sweeper: %v", err)
	}
	defer sweeper.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorWithErr(err, "Graceful shutdown failed")
	}
	log.Info("Server stopped")
}
