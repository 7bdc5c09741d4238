package parser

import (
	"regexp"
	"strings"
)

// Marcadores que o prompt de visão pede pro modelo incluir na resposta.
// Precisam bater byte a byte com o texto do prompt.
const (
	MarkerSummary = "MATCH SUMMARY:"
	MarkerGoals   = "GOALS ANALYSIS:"

	// FallbackSuggestion é usada quando a resposta não segue o formato esperado.
	FallbackSuggestion = "Unable to provide betting analysis."
)

// Parsed separa a resposta livre do modelo em resumo e sugestão de aposta.
type Parsed struct {
	Summary           string
	BettingSuggestion string
}

// Parse divide a resposta do modelo nos dois marcadores documentados.
// A resposta do modelo é texto não confiável: se qualquer marcador faltar,
// o texto inteiro vira resumo e a sugestão recebe o fallback fixo.
// Com marcadores repetidos, a primeira ocorrência de GOALS ANALYSIS: decide o corte.
func Parse(reply string) Parsed {
	if !strings.Contains(reply, MarkerSummary) || !strings.Contains(reply, MarkerGoals) {
		return Parsed{
			Summary:           reply,
			BettingSuggestion: FallbackSuggestion,
		}
	}

	parts := strings.SplitN(reply, MarkerGoals, 2)
	return Parsed{
		Summary:           strings.TrimSpace(strings.Replace(parts[0], MarkerSummary, "", 1)),
		BettingSuggestion: strings.TrimSpace(parts[1]),
	}
}

// Bet é a recomendação extraída da sugestão: lado over/under e a linha de gols.
type Bet struct {
	Side  string `json:"side"`  // "over" | "under"
	Value string `json:"value"` // ex: "2.5"
}

var betPattern = regexp.MustCompile(`(over|under)\s*(\d+(?:\.\d+)?)`)

// ExtractBet procura o primeiro "over"/"under" seguido de número na sugestão.
// Heurística de melhor esforço, não uma gramática estrita: sem número, decide
// pelo lado citado no texto; sem lado nenhum, cai no padrão under 2.5.
func ExtractBet(suggestion string) Bet {
	s := strings.ToLower(suggestion)

	if m := betPattern.FindStringSubmatch(s); m != nil {
		return Bet{Side: m[1], Value: m[2]}
	}

	if strings.Contains(s, "over") {
		return Bet{Side: "over", Value: "2.5"}
	}
	if strings.Contains(s, "under") {
		return Bet{Side: "under", Value: "2.5"}
	}

	return Bet{Side: "under", Value: "2.5"}
}
