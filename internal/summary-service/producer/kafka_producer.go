package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Lobster444/AI-HAC25/pkg/contracts/events"
)

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(w *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: w}
}

// PublishSummaryAnalyzed envia o evento com chave por matchId,
// mantendo as análises de uma mesma partida na mesma partição.
func (p *KafkaPublisher) PublishSummaryAnalyzed(ctx context.Context, e events.SummaryAnalyzed) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.MatchID),
		Value: b,
	})
}
