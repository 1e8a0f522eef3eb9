package models

import "time"

// TurnMessageType is the queue message type carrying a TurnRecord.
const TurnMessageType = "chat.turn_completed"

// TurnRecord is the analytics row written after every completed turn.
// It feeds both the ClickHouse turn log and the Kafka turn-event topic.
type TurnRecord struct {
	At         time.Time `json:"at"`
	SessionKey string    `json:"session_key"`
	Query      string    `json:"query"`
	Intents    []string  `json:"intents"`
	Entity     string    `json:"entity,omitempty"`
	Symbol     string    `json:"symbol,omitempty"`
	FromMemory bool      `json:"from_memory"`
	DurationMs int64     `json:"duration_ms"`
	ErrorKind  string    `json:"error_kind,omitempty"`
}
