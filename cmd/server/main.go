package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/Rishabh705/pixel-pals-backend/internal/adapters/http"
	"github.com/Rishabh705/pixel-pals-backend/internal/adapters/ws"
	"github.com/Rishabh705/pixel-pals-backend/internal/app"
	"github.com/Rishabh705/pixel-pals-backend/internal/auth"
	"github.com/Rishabh705/pixel-pals-backend/internal/config"
	"github.com/Rishabh705/pixel-pals-backend/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	tokens, err := auth.New(auth.Options{
		Secret:     []byte(cfg.Secret),
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("token setup")
	}

	// Don't listen if the mongo connection fails.
	mongo, err := store.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := mongo.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	// Wire the realtime core: directory + rooms + router over the chat store.
	rtRouter := app.NewRouter(mongo.Chats(), mongo.Messages(), cfg.StoreTimeout)
	wsCtl := ws.NewController(rtRouter, tokens, cfg)

	r := router.SetupRouter(ctx, router.Deps{
		Cfg:    cfg,
		Tokens: tokens,
		Mongo:  mongo,
		WS:     wsCtl,
	})
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("pixel-pals server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
