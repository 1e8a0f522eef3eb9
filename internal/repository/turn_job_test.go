package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinTalk/internal/domain/models"
)

type memTurnLog struct {
	rows []*models.TurnRecord
	err  error
}

func (m *memTurnLog) Insert(_ context.Context, rec *models.TurnRecord) error {
	if m.err != nil {
		return m.err
	}
	m.rows = append(m.rows, rec)
	return nil
}

func (m *memTurnLog) Close() error { return nil }

type memPublisher struct {
	recs []*models.TurnRecord
	err  error
}

func (m *memPublisher) Publish(_ context.Context, rec *models.TurnRecord) error {
	if m.err != nil {
		return m.err
	}
	m.recs = append(m.recs, rec)
	return nil
}

func (m *memPublisher) Close() error { return nil }

func sampleRecord() *models.TurnRecord {
	return &models.TurnRecord{
		At:         time.Now(),
		SessionKey: "chat-1",
		Query:      "infosys price",
		Intents:    []string{"stock"},
		Entity:     "Infosys",
		Symbol:     "INFY",
		DurationMs: 42,
	}
}

func TestTurnAnalyticsJobIdentity(t *testing.T) {
	job := NewTurnAnalyticsJob(nil, nil)
	assert.Equal(t, "turn_analytics", job.Name())
	assert.Equal(t, models.TurnMessageType, job.Type())
}

func TestTurnAnalyticsJobFansOutToBothSinks(t *testing.T) {
	log, pub := &memTurnLog{}, &memPublisher{}
	job := NewTurnAnalyticsJob(log, pub)

	require.NoError(t, job.Handle(context.Background(), sampleRecord()))

	require.Len(t, log.rows, 1)
	require.Len(t, pub.recs, 1)
	assert.Equal(t, "Infosys", log.rows[0].Entity)
	assert.Equal(t, "INFY", pub.recs[0].Symbol)
}

func TestTurnAnalyticsJobParsesMapPayload(t *testing.T) {
	// Payloads round-tripped through Redis arrive as generic maps.
	log := &memTurnLog{}
	job := NewTurnAnalyticsJob(log, nil)

	payload := map[string]interface{}{
		"session_key": "chat-2",
		"query":       "tcs news",
		"intents":     []interface{}{"news"},
	}
	require.NoError(t, job.Handle(context.Background(), payload))

	require.Len(t, log.rows, 1)
	assert.Equal(t, "chat-2", log.rows[0].SessionKey)
	assert.Equal(t, []string{"news"}, log.rows[0].Intents)
}

func TestTurnAnalyticsJobPropagatesSinkErrors(t *testing.T) {
	sinkErr := errors.New("sink down")

	job := NewTurnAnalyticsJob(&memTurnLog{err: sinkErr}, &memPublisher{})
	assert.ErrorIs(t, job.Handle(context.Background(), sampleRecord()), sinkErr)

	job = NewTurnAnalyticsJob(&memTurnLog{}, &memPublisher{err: sinkErr})
	assert.ErrorIs(t, job.Handle(context.Background(), sampleRecord()), sinkErr)
}

func TestTurnAnalyticsJobRejectsGarbagePayload(t *testing.T) {
	job := NewTurnAnalyticsJob(&memTurnLog{}, nil)
	assert.Error(t, job.Handle(context.Background(), make(chan int)))
}
