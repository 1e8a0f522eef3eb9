package repository

import (
	"context"
	"fmt"

	"FinTalk/internal/domain/models"
	domrepo "FinTalk/internal/domain/repository"
	"FinTalk/pkg/queue"
)

// TurnAnalyticsJob drains turn records off the queue into the turn log
// and the event topic. Either sink may be absent; a failing sink fails
// the job so the queue's retry path picks it up.
type TurnAnalyticsJob struct {
	log       domrepo.TurnLog
	publisher domrepo.TurnPublisher
}

func NewTurnAnalyticsJob(log domrepo.TurnLog, publisher domrepo.TurnPublisher) *TurnAnalyticsJob {
	return &TurnAnalyticsJob{log: log, publisher: publisher}
}

func (j *TurnAnalyticsJob) Name() string { return "turn_analytics" }

func (j *TurnAnalyticsJob) Type() string { return models.TurnMessageType }

func (j *TurnAnalyticsJob) Handle(ctx context.Context, payload interface{}) error {
	rec, err := queue.ParsePayload[models.TurnRecord](payload)
	if err != nil {
		return fmt.Errorf("parse turn record: %w", err)
	}

	if j.log != nil {
		if err := j.log.Insert(ctx, rec); err != nil {
			return err
		}
	}
	if j.publisher != nil {
		if err := j.publisher.Publish(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
