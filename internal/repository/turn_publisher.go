package repository

import (
	"context"
	"fmt"

	"FinTalk/internal/domain/models"
	domrepo "FinTalk/internal/domain/repository"
	pkgkafka "FinTalk/pkg/kafka"
)

// KafkaTurnPublisher emits one event per completed turn, keyed by session
// so events for one conversation stay ordered within a partition.
type KafkaTurnPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaTurnPublisher(producer *pkgkafka.Producer, topic string) domrepo.TurnPublisher {
	return &KafkaTurnPublisher{producer: producer, topic: topic}
}

func (p *KafkaTurnPublisher) Publish(ctx context.Context, rec *models.TurnRecord) error {
	if err := p.producer.Publish(ctx, p.topic, []byte(rec.SessionKey), rec); err != nil {
		return fmt.Errorf("publish turn event: %w", err)
	}
	return nil
}

func (p *KafkaTurnPublisher) Close() error {
	return p.producer.Close()
}
