package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campuswell/stresslens/config"
	"github.com/campuswell/stresslens/internal/handlers"
	"github.com/campuswell/stresslens/internal/logging"
	"github.com/campuswell/stresslens/internal/monitoring"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	settings := config.GetSettings()
	api := handlers.NewAPI()

	go monitoring.MonitorComponent(ctx, "text_extractor", api.TextSelfTest, &api.TextHealthy)
	go monitoring.MonitorComponent(ctx, "behavior_extractor", api.BehaviorSelfTest, &api.BehaviorHealthy)
	go monitoring.MonitorComponent(ctx, "fusion_scorer", api.ScorerSelfTest, &api.ScorerHealthy)

	server := &http.Server{
		Addr:         ":" + settings.HTTPPort,
		Handler:      api.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("[Main] Starting HTTP server", slog.String("port", settings.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] HTTP server failed",
				slog.String("error", err.Error()))
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("[Main] Shutting down HTTP server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] HTTP server shutdown failed",
			slog.String("error", err.Error()))
	}
}
