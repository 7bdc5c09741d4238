package topics

const (
	// Análises de imagem concluídas pelo summary-service
	SummaryAnalyzed = "summary_analyzed"

	// DLQ
	SummaryAnalyzedDLQ = "summary_analyzed_dlq"
)
