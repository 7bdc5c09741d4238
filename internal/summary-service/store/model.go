package store

import (
	"time"

	"github.com/Lobster444/AI-HAC25/internal/summary-service/odds"
)

// MatchSummary é o documento persistido por partida.
// id e matchId carregam sempre o mesmo valor (chave do documento).
type MatchSummary struct {
	ID                string          `json:"id"`
	MatchID           string          `json:"matchId"`
	Summary           string          `json:"summary"`
	BettingSuggestion string          `json:"bettingSuggestion,omitempty"`
	OverUnderOdds     *odds.OverUnder `json:"overUnderOdds,omitempty"`
	ImageURL          string          `json:"imageUrl,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// APICredential é o documento singleton com a chave do provedor de visão.
type APICredential struct {
	ID        string    `json:"id"` // sempre "openai"
	OpenAIKey string    `json:"openaiKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SaveInput descreve um upsert completo. Campos opcionais nulos não são gravados.
type SaveInput struct {
	MatchID           string
	Summary           string
	BettingSuggestion *string
	OverUnderOdds     *odds.OverUnder
	ImageURL          *string
}

// UpdateInput descreve uma atualização parcial de um documento existente.
type UpdateInput struct {
	Summary           *string
	BettingSuggestion *string
	OverUnderOdds     *odds.OverUnder
	ImageURL          *string
}
