package main

import (
	"context"
	"encoding/json"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Lobster444/AI-HAC25/internal/shared/cache"
	"github.com/Lobster444/AI-HAC25/internal/shared/config"
	"github.com/Lobster444/AI-HAC25/internal/shared/db"
	"github.com/Lobster444/AI-HAC25/internal/shared/kafka"
	"github.com/Lobster444/AI-HAC25/internal/shared/logger"
	"github.com/Lobster444/AI-HAC25/internal/shared/metrics"
	"github.com/Lobster444/AI-HAC25/internal/summary-archiver/consumer"
	"github.com/Lobster444/AI-HAC25/internal/summary-archiver/pubsub"
	"github.com/Lobster444/AI-HAC25/internal/summary-archiver/repository"
	"github.com/Lobster444/AI-HAC25/pkg/contracts/events"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Inicializa dependências: Postgres (espelho relacional) e Redis (pub/sub)
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	redisClient, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	repo := repository.NewPostgresRepo(pg)

	// Consumer Kafka (consumer group summary-archiver)
	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicSummaryAnalyzed, "summary-archiver")
	defer reader.Close()

	// Métricas Prometheus do arquivamento
	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "summary_arch_messages_consumed_total", Help: "mensagens consumidas"})
	persist := prometheus.NewCounter(prometheus.CounterOpts{Name: "summary_arch_db_writes_total", Help: "escritas no banco (upsert+history)"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "summary_arch_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, persist, errorsBy)

	// Broadcaster para avisar o WS do summary-service via Redis Pub/Sub
	broadcaster := pubsub.NewRedisBroadcaster(redisClient)

	arch := &consumer.Archiver{
		Log:        log,
		Reader:     reader,
		Repo:       repo,
		OnConsumed: func() { consumed.Inc() },
		OnPersist:  func() { persist.Inc() },
		OnError:    func(stage string) { errorsBy.WithLabelValues(stage).Inc() },

		// Após persistir, empurra o resumo novo para os clientes conectados
		OnAfterPersist: func(ev events.SummaryAnalyzed) {
			msg := pubsub.WSUpdate{MatchID: ev.MatchID, Payload: ev}
			b, _ := json.Marshal(msg)

			ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := broadcaster.Publish(ctx, cfg.RedisPubSubChannel, b); err != nil {
				log.Warn("ws broadcast publish failed", zap.Error(err))
			}
		},
	}

	// Servidor de métricas e health
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return redisClient.Ping(ctx).Err()
	})
	defer metricsSrv.Close()
	log.Info("metrics/health server started", zap.String("addr", metricsSrv.Addr))

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("summary-archiver started", zap.String("consume", cfg.TopicSummaryAnalyzed))
	if err := arch.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("archiver stopped with error", zap.Error(err))
	}
	log.Info("summary-archiver stopped")
}
