package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Lobster444/AI-HAC25/internal/shared/cache"
	"github.com/Lobster444/AI-HAC25/internal/shared/config"
	"github.com/Lobster444/AI-HAC25/internal/shared/kafka"
	"github.com/Lobster444/AI-HAC25/internal/shared/logger"
	"github.com/Lobster444/AI-HAC25/internal/shared/metrics"
	"github.com/Lobster444/AI-HAC25/internal/summary-service/analyzer"
	httpapi "github.com/Lobster444/AI-HAC25/internal/summary-service/http"
	"github.com/Lobster444/AI-HAC25/internal/summary-service/producer"
	"github.com/Lobster444/AI-HAC25/internal/summary-service/store"
	"github.com/Lobster444/AI-HAC25/internal/summary-service/vision"
	"github.com/Lobster444/AI-HAC25/internal/summary-service/ws"
)

func main() {
	// carrega config
	cfg := config.Load()

	// inicia logger
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	// conecta com o Redis (document store dos resumos + pub/sub do WS)
	redisClient, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("redis connected")

	// writer Kafka dos eventos de análise
	writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicSummaryAnalyzed)
	defer writer.Close()
	log.Info("kafka writer ready", zap.String("topic", cfg.TopicSummaryAnalyzed))

	docStore := store.New(redisClient)

	// métrica de análises por resultado
	analyses := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "summary_analyses_total", Help: "análises de imagem por resultado"},
		[]string{"outcome"},
	)
	prometheus.MustRegister(analyses)

	anlz := &analyzer.Analyzer{
		Log:         log,
		Store:       docStore,
		Vision:      vision.New(cfg.OpenAIAPIURL, cfg.OpenAIModel),
		Publ:        producer.NewKafkaPublisher(writer),
		Model:       cfg.OpenAIModel,
		FallbackKey: cfg.OpenAIAPIKey,
		OnAnalyzed:  func(outcome string) { analyses.WithLabelValues(outcome).Inc() },
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// hub WS alimentado pelo canal Redis Pub/Sub do archiver
	hub := ws.NewHub(func(r *http.Request) bool { return true })
	ws.StartRedisSubscriber(ctx, redisClient, cfg.RedisPubSubChannel, hub, log)

	if cfg.AdminAPIToken == "" {
		log.Warn("ADMIN_API_TOKEN not set, admin routes will refuse requests")
	}

	api := httpapi.NewServer(log, docStore, anlz, hub, cfg.AdminAPIToken)

	// servidor de métricas e health em porta separada
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	defer metricsSrv.Close()
	log.Info("metrics/health server started", zap.String("addr", metricsSrv.Addr))

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: api.Router(),
	}

	go func() {
		log.Info("http server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("summary-service stopped")
}
