package events

// Par de odds de exibição gerado junto com cada análise.
type OverUnder struct {
	Over  string `json:"over"`
	Under string `json:"under"`
}

// Evento publicado no tópico "summary_analyzed" após cada análise bem-sucedida.
type SummaryAnalyzed struct {
	AnalysisID        string    `json:"analysis_id"`
	MatchID           string    `json:"match_id"`
	Summary           string    `json:"summary"`
	BettingSuggestion string    `json:"betting_suggestion"`
	Odds              OverUnder `json:"odds"`
	Model             string    `json:"model"`    // modelo de visão utilizado
	TsUnixMs          int64     `json:"ts_unix_ms"`
}
