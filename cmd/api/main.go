package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/drivenpass/drivenpass-go/internal/config"
	"github.com/drivenpass/drivenpass-go/internal/crypto"
	"github.com/drivenpass/drivenpass-go/internal/handler"
	"github.com/drivenpass/drivenpass-go/internal/logging"
	"github.com/drivenpass/drivenpass-go/internal/model"
	"github.com/drivenpass/drivenpass-go/internal/repository"
	"github.com/drivenpass/drivenpass-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	logging.Init(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.ValidateSecrets(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	codec, err := crypto.NewCodec(cfg.CryptrSecret)
	if err != nil {
		slog.Error("encryption setup failed", "error", err)
		os.Exit(1)
	}
	tokens := crypto.NewTokenService(cfg.JWTSecret, cfg.TokenLifetime, clockwork.NewRealClock())

	ctx := context.Background()
	db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.MigrateOnStart {
		if err := repository.MigrateUp(ctx, db); err != nil {
			slog.Error("migrations failed", "error", err)
			os.Exit(1)
		}
	}

	userRepo := repository.NewUserRepository(db)
	credentials := service.NewVaultService[*model.Credential]("credential", repository.NewCredentialRepository(db), codec)
	cards := service.NewVaultService[*model.Card]("card", repository.NewCardRepository(db), codec)
	notes := service.NewVaultService[*model.Note]("note", repository.NewNoteRepository(db), codec)

	gate := service.NewIdentityGate(tokens, userRepo)
	authService := service.NewAuthService(userRepo, tokens, gate)
	eraser := service.NewErasureCoordinator(userRepo, gate, repository.NewTransactor(db), credentials, cards, notes)

	router := handler.NewRouter(handler.Handlers{
		Gate:        gate,
		Auth:        handler.NewAuthHandler(authService),
		Credentials: handler.NewSecretHandler[*model.Credential, model.CreateCredentialRequest](credentials),
		Cards:       handler.NewSecretHandler[*model.Card, model.CreateCardRequest](cards),
		Notes:       handler.NewSecretHandler[*model.Note, model.CreateNoteRequest](notes),
		Erase:       handler.NewEraseHandler(eraser),
		Metrics:     promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
