package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/antonveselov/voicegen/internal/api"
	"github.com/antonveselov/voicegen/internal/config"
	"github.com/antonveselov/voicegen/internal/convert"
	"github.com/antonveselov/voicegen/internal/generate"
	"github.com/antonveselov/voicegen/internal/tts"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Provider selection is process-wide and fixed for the process lifetime.
	provider, err := tts.NewProvider(tts.FactoryConfig{
		Backend: cfg.TTS.Provider,
		Yandex: tts.YandexConfig{
			APIKey:   cfg.TTS.Yandex.APIKey,
			FolderID: cfg.TTS.Yandex.FolderID,
		},
		Sber: tts.SberConfig{
			APIKey:   cfg.TTS.Sber.APIKey,
			ClientID: cfg.TTS.Sber.ClientID,
		},
		Local: tts.LocalConfig{
			PreferHosted:  cfg.TTS.Local.PreferHosted,
			DisableHosted: cfg.TTS.Local.DisableHosted,
			EspeakPath:    cfg.TTS.Local.EspeakPath,
		},
	})
	if err != nil {
		slog.Error("failed to initialize tts provider", "provider", cfg.TTS.Provider, "error", err)
		os.Exit(1)
	}
	slog.Info("tts provider initialized", "provider", provider.Name())

	service := tts.NewService(provider)
	useCase := generate.NewUseCase(service)
	converter := convert.New(cfg.Convert.FFmpegPath)

	router := api.NewRouter(cfg, useCase, converter, provider.Name())
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting API server", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
