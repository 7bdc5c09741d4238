package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Lobster444/AI-HAC25/pkg/contracts/events"
)

// PostgresRepo espelha no Postgres as análises vindas do Kafka:
// último resumo por partida para consulta relacional e histórico append-only
// para auditoria (o documento vivo fica no Redis, via summary-service).
type PostgresRepo struct {
	DB *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

// UpsertLatest insere ou atualiza o último resumo da partida na tabela
// match_summary_latest. ON CONFLICT garante uma linha por match_id.
func (r *PostgresRepo) UpsertLatest(ctx context.Context, e events.SummaryAnalyzed) error {
	const q = `
		INSERT INTO match_summary_latest
		  (match_id, analysis_id, summary, betting_suggestion, over_odd, under_odd, model, updated_at)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (match_id) DO UPDATE SET
		  analysis_id        = EXCLUDED.analysis_id,
		  summary            = EXCLUDED.summary,
		  betting_suggestion = EXCLUDED.betting_suggestion,
		  over_odd           = EXCLUDED.over_odd,
		  under_odd          = EXCLUDED.under_odd,
		  model              = EXCLUDED.model,
		  updated_at         = EXCLUDED.updated_at
	`
	_, err := r.DB.ExecContext(ctx, q,
		e.MatchID, e.AnalysisID, e.Summary, e.BettingSuggestion,
		e.Odds.Over, e.Odds.Under, e.Model, time.UnixMilli(e.TsUnixMs),
	)
	return err
}

// InsertHistory registra a análise no histórico (match_summary_history).
func (r *PostgresRepo) InsertHistory(ctx context.Context, e events.SummaryAnalyzed) error {
	const q = `
		INSERT INTO match_summary_history
		  (analysis_id, match_id, summary, betting_suggestion, over_odd, under_odd, model, created_at)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7,$8)
	`
	_, err := r.DB.ExecContext(ctx, q,
		e.AnalysisID, e.MatchID, e.Summary, e.BettingSuggestion,
		e.Odds.Over, e.Odds.Under, e.Model, time.UnixMilli(e.TsUnixMs),
	)
	return err
}
