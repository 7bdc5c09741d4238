package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Lobster444/AI-HAC25/internal/summary-archiver/repository"
	"github.com/Lobster444/AI-HAC25/pkg/contracts/events"
)

// Archiver consome eventos summary_analyzed do Kafka e persiste no banco
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa
type Archiver struct {
	Log    *zap.Logger
	Reader *kafka.Reader
	Repo   *repository.PostgresRepo

	OnConsumed func()       // métricas (counter++)
	OnPersist  func()       // métricas
	OnError    func(string) // métricas por estágio

	// OnAfterPersist roda após persistência bem-sucedida (broadcast WS)
	OnAfterPersist func(e events.SummaryAnalyzed)
}

// Run inicia o loop principal de consumo e arquivamento das análises
func (a *Archiver) Run(ctx context.Context) error {
	for {
		m, err := a.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // encerra se o contexto for cancelado
			}
			a.Log.Warn("kafka read failed", zap.Error(err))
			if a.OnError != nil {
				a.OnError("read")
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if a.OnConsumed != nil {
			a.OnConsumed()
		}

		var ev events.SummaryAnalyzed
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			a.Log.Warn("invalid message", zap.Error(err))
			if a.OnError != nil {
				a.OnError("decode")
			}
			continue
		}

		// Atualiza o último resumo e acrescenta ao histórico
		if err := a.Repo.UpsertLatest(ctx, ev); err != nil {
			a.Log.Warn("db upsert failed", zap.String("matchId", ev.MatchID), zap.Error(err))
			if a.OnError != nil {
				a.OnError("db_upsert")
			}
			continue
		}
		if err := a.Repo.InsertHistory(ctx, ev); err != nil {
			a.Log.Warn("db insert history failed", zap.String("matchId", ev.MatchID), zap.Error(err))
			if a.OnError != nil {
				a.OnError("db_history")
			}
			continue
		}
		if a.OnPersist != nil {
			a.OnPersist()
		}

		if a.OnAfterPersist != nil {
			a.OnAfterPersist(ev)
		}
	}
}
