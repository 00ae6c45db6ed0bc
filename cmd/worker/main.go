package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/campuswell/stresslens/config"
	"github.com/campuswell/stresslens/internal/analysis/behavior"
	"github.com/campuswell/stresslens/internal/analysis/fusion"
	"github.com/campuswell/stresslens/internal/analysis/text"
	"github.com/campuswell/stresslens/internal/clients"
	"github.com/campuswell/stresslens/internal/clients/kafka_client"
	"github.com/campuswell/stresslens/internal/consumers"
	"github.com/campuswell/stresslens/internal/db"
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

	cfg := kafka_client.GetKafkaConfig()

	for {
		err := kafka_client.InitKafkaProducer(cfg)
		if err == nil {
			break
		}

		slog.Warn("Kafka init failed, retrying...", slog.String("error", err.Error()))
		time.Sleep(5 * time.Second)
	}
	defer kafka_client.CloseKafkaProducer()

	clients.InitValkey()
	defer clients.CloseValkey()
	db.InitDynamoDB()

	settings := config.GetSettings()
	scorer := fusion.NewScorer(fusion.Thresholds{
		Medium: settings.StressThresholdMedium,
		High:   settings.StressThresholdHigh,
	})

	analyzerHealthy := &atomic.Bool{}
	analyzerHealthy.Store(true)

	go monitoring.MonitorComponent(ctx, "text_extractor", text.NewExtractor().SelfTest, analyzerHealthy)
	go monitoring.MonitorComponent(ctx, "behavior_extractor", behavior.NewExtractor().SelfTest, analyzerHealthy)
	go monitoring.MonitorComponent(ctx, "fusion_scorer", scorer.SelfTest, analyzerHealthy)

	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_ANALYSIS_REQUESTS, consumers.WrapConsumer(
		consumers.StartAnalysisConsumer, analyzerHealthy).Handler())

	if err := kafka_client.StartConsumer(ctx); err != nil {
		slog.Error("[Main] Failed to start consumer",
			slog.String("error", err.Error()))
	}
}
