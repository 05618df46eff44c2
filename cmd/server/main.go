package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"
	"github.com/stemsi/sodaubai-backend/internal/assistant"
	"github.com/stemsi/sodaubai-backend/internal/config"
	"github.com/stemsi/sodaubai-backend/internal/database"
	"github.com/stemsi/sodaubai-backend/internal/handler"
	"github.com/stemsi/sodaubai-backend/internal/logger"
	"github.com/stemsi/sodaubai-backend/internal/middleware"
	"github.com/stemsi/sodaubai-backend/internal/repository"
	"github.com/stemsi/sodaubai-backend/internal/router"
	"github.com/stemsi/sodaubai-backend/internal/service"
	"github.com/stemsi/sodaubai-backend/internal/validator"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("store", cfg.StoreDriver).
		Str("timezone", cfg.Location.String()).
		Msg("Starting Sổ Đầu Bài Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Open Blob Store ───────────────────────────────────────────────
	store, closeStore, err := database.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	defer closeStore()

	// "Today" and seed dates follow the school's time zone.
	now := func() time.Time { return time.Now().In(cfg.Location) }

	adminSecret, err := bcrypt.GenerateFromPassword([]byte(cfg.DefaultAdminSecret), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash default admin secret")
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	keys := config.NewBlobKeyStruct(cfg.KeyPrefix)
	accountRepo := repository.NewAccountRepository(store, keys, repository.DefaultAccounts(string(adminSecret)), log)
	entryRepo := repository.NewEntryRepository(store, keys, now, log)
	sessionRepo := repository.NewSessionRepository(store, keys, log)

	// ─── Initialize Services ──────────────────────────────────────────
	rewriter, err := assistant.NewGeminiRewriter(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create assistant client")
	}

	authService := service.NewAuthService(cfg, accountRepo, sessionRepo, log)
	accountService := service.NewAccountService(accountRepo, sessionRepo, authService, log)
	entryService := service.NewEntryService(entryRepo, now, log)
	statsService := service.NewStatsService(entryRepo, accountRepo, log)
	commentService := service.NewCommentService(rewriter, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:    handler.NewAuthHandler(authService, accountService),
		Account: handler.NewAccountHandler(accountService),
		Subject: handler.NewSubjectHandler(statsService),
		Entry:   handler.NewEntryHandler(entryService, now),
		Stats:   handler.NewStatsHandler(statsService, cfg.PDFFontPath, now),
		Comment: handler.NewCommentHandler(commentService),
		System:  handler.NewSystemHandler(store, cfg.StoreDriver, keys.CurrentSessionKey(), log),
	}

	var loginLimiter *middleware.RateLimiter
	if cfg.LoginRatePerMinute > 0 {
		loginLimiter = middleware.NewRateLimiter(cfg.LoginRatePerMinute, time.Minute)
		defer loginLimiter.Stop()
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, loginLimiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
