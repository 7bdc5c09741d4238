package ws

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: subscribe | unsubscribe | ping
// MatchID: obrigatório para subscribe/unsubscribe
type ClientMsg struct {
	Type    string `json:"type"`    // subscribe | unsubscribe | ping
	MatchID string `json:"matchId"` // requerido em subscribe/unsubscribe
}

// SummaryUpdate representa um resumo recém-analisado enviado aos clientes inscritos
type SummaryUpdate struct {
	MatchID string      `json:"matchId"`
	Payload interface{} `json:"payload"`
}
