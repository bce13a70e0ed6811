package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asfandyar/optico-store/internal/api"
	"github.com/asfandyar/optico-store/internal/config"
	"github.com/asfandyar/optico-store/internal/database"
	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer db.Close()

	log.Info().Msg("connected to database")

	app := api.New(api.NewStorage(db), cfg, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := app.Seed(ctx); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("seed bootstrap data")
	}
	cancel()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-stop

	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		os.Exit(1)
	}
}
