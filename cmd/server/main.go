package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Wyydra/dial/internal/adapter/driven/state/memory"
	handler "github.com/Wyydra/dial/internal/adapter/driving/http"
	"github.com/Wyydra/dial/internal/config"
	"github.com/Wyydra/dial/internal/core/service"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	w := zerolog.ConsoleWriter{Out: os.Stdout}
	l := zerolog.New(w).With().Timestamp().Caller().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		l.Fatal().Err(err).Msg("Failed to load config")
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		l.Warn().Str("log_level", cfg.LogLevel).Msg("Unknown log level, keeping info")
	} else {
		zerolog.SetGlobalLevel(lvl)
	}

	registry := memory.NewRegistry()
	tracker := memory.NewTracker()

	relay := service.NewRelay(registry, tracker, cfg.StrictErrors)
	h := handler.NewHandler(relay)

	go relay.Run()

	r := h.NewRouter(cfg.StaticDir)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	go func() {
		l.Info().Str("addr", cfg.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	l.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("Server forced to shutdown")
	}

	relay.Stop()
	l.Info().Msg("Server exited")
}
