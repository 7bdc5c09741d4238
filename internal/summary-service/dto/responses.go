package dto

import (
	"time"

	"github.com/Lobster444/AI-HAC25/internal/summary-service/store"
)

// SummaryResponse segue o contrato do app: partida sem resumo retorna
// summary null com status 200, nunca erro.
type SummaryResponse struct {
	Success bool                `json:"success"`
	Summary *store.MatchSummary `json:"summary"`
}

type KeyStatusResponse struct {
	Configured bool       `json:"configured"`
	MaskedKey  string     `json:"maskedKey,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
