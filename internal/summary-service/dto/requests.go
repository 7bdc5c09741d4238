package dto

import "github.com/Lobster444/AI-HAC25/internal/summary-service/odds"

type AnalyzeRequest struct {
	ImageBase64 string `json:"imageBase64"` // screenshot de estatísticas, JPEG em base64
	ImageURL    string `json:"imageUrl,omitempty"`
}

type UpdateSummaryRequest struct {
	Summary           string          `json:"summary"`
	BettingSuggestion *string         `json:"bettingSuggestion,omitempty"`
	OverUnderOdds     *odds.OverUnder `json:"overUnderOdds,omitempty"`
	ImageURL          *string         `json:"imageUrl,omitempty"`
}

type SaveKeyRequest struct {
	OpenAIKey string `json:"openaiKey"`
}
