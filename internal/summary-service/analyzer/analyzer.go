package analyzer

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Lobster444/AI-HAC25/internal/summary-service/odds"
	"github.com/Lobster444/AI-HAC25/internal/summary-service/parser"
	"github.com/Lobster444/AI-HAC25/internal/summary-service/store"
	"github.com/Lobster444/AI-HAC25/pkg/contracts/events"
)

var (
	// ErrNoAPIKey: nenhuma credencial no store nem seed no ambiente.
	// Nenhuma chamada externa é feita nesse caso.
	ErrNoAPIKey = errors.New("openai api key not configured")

	ErrEmptyImage   = errors.New("image data required")
	ErrEmptyMatchID = errors.New("matchId required")

	// ErrUpstream marca falha na chamada ao modelo de visão.
	ErrUpstream = errors.New("vision upstream failed")
)

// VisionClient fala com o modelo de visão. A chave vai por chamada.
type VisionClient interface {
	Describe(ctx context.Context, apiKey, imageBase64 string) (string, error)
}

// SummaryStore é o recorte do store que o orquestrador usa.
type SummaryStore interface {
	GetAPIKey(ctx context.Context) (string, error)
	Save(ctx context.Context, in store.SaveInput) (*store.MatchSummary, error)
}

// Publisher emite o evento de análise concluída (melhor esforço).
type Publisher interface {
	PublishSummaryAnalyzed(ctx context.Context, e events.SummaryAnalyzed) error
}

// Analyzer orquestra o fluxo de análise: visão -> parser -> odds -> store -> evento.
type Analyzer struct {
	Log    *zap.Logger
	Store  SummaryStore
	Vision VisionClient
	Publ   Publisher // opcional
	Model  string

	// FallbackKey permite operar antes do admin salvar uma credencial no store.
	FallbackKey string

	OnAnalyzed func(outcome string) // métricas (counter por resultado)
}

// Result é o retorno de uma análise, com sucesso ou não.
type Result struct {
	Success           bool           `json:"success"`
	MatchID           string         `json:"matchId"`
	AnalysisID        string         `json:"analysisId,omitempty"`
	Summary           string         `json:"summary"`
	BettingSuggestion string         `json:"bettingSuggestion"`
	OverUnderOdds     odds.OverUnder `json:"overUnderOdds"`
	RecommendedBet    *parser.Bet    `json:"recommendedBet,omitempty"`
	Error             string         `json:"error,omitempty"`
}

// Analyze roda uma análise única: uma imagem, uma chamada ao modelo, sem retry.
// imageURL é opcional e só entra no documento quando não vazio.
func (a *Analyzer) Analyze(ctx context.Context, imageData []byte, matchID, imageURL string) (Result, error) {
	if matchID == "" {
		return a.fail(matchID, ErrEmptyMatchID)
	}
	if len(imageData) == 0 {
		return a.fail(matchID, ErrEmptyImage)
	}

	apiKey, err := a.Store.GetAPIKey(ctx)
	if err != nil {
		return a.fail(matchID, fmt.Errorf("load api key: %w", err))
	}
	if apiKey == "" {
		apiKey = a.FallbackKey
	}
	if apiKey == "" {
		return a.fail(matchID, ErrNoAPIKey)
	}

	reply, err := a.Vision.Describe(ctx, apiKey, base64.StdEncoding.EncodeToString(imageData))
	if err != nil {
		return a.fail(matchID, fmt.Errorf("%w: %v", ErrUpstream, err))
	}

	parsed := parser.Parse(reply)
	ou := odds.Generate()
	bet := parser.ExtractBet(parsed.BettingSuggestion)
	analysisID := uuid.NewString()

	in := store.SaveInput{
		MatchID:           matchID,
		Summary:           parsed.Summary,
		BettingSuggestion: &parsed.BettingSuggestion,
		OverUnderOdds:     &ou,
	}
	if imageURL != "" {
		in.ImageURL = &imageURL
	}
	if _, err := a.Store.Save(ctx, in); err != nil {
		return a.fail(matchID, fmt.Errorf("persist summary: %w", err))
	}

	// publicação é melhor esforço: análise persistida não falha por causa do evento
	if a.Publ != nil {
		ev := events.SummaryAnalyzed{
			AnalysisID:        analysisID,
			MatchID:           matchID,
			Summary:           parsed.Summary,
			BettingSuggestion: parsed.BettingSuggestion,
			Odds:              events.OverUnder{Over: ou.Over, Under: ou.Under},
			Model:             a.Model,
		}
		if err := a.Publ.PublishSummaryAnalyzed(ctx, ev); err != nil {
			a.Log.Warn("summary_analyzed publish failed",
				zap.String("matchId", matchID),
				zap.Error(err),
			)
		}
	}

	if a.OnAnalyzed != nil {
		a.OnAnalyzed("success")
	}

	return Result{
		Success:           true,
		MatchID:           matchID,
		AnalysisID:        analysisID,
		Summary:           parsed.Summary,
		BettingSuggestion: parsed.BettingSuggestion,
		OverUnderOdds:     ou,
		RecommendedBet:    &bet,
	}, nil
}

// fail monta o resultado de falha: campos vazios, odds zeradas, erro preenchido.
func (a *Analyzer) fail(matchID string, err error) (Result, error) {
	if a.OnAnalyzed != nil {
		a.OnAnalyzed(outcome(err))
	}
	return Result{
		Success: false,
		MatchID: matchID,
		Error:   err.Error(),
	}, err
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrNoAPIKey):
		return "no_key"
	case errors.Is(err, ErrEmptyImage), errors.Is(err, ErrEmptyMatchID):
		return "invalid_input"
	case errors.Is(err, ErrUpstream):
		return "upstream_error"
	default:
		return "error"
	}
}
