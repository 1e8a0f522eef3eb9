package models

import "time"

// WorkflowState is the mutable record threaded through one turn of the
// orchestrator. It is created at turn start and discarded at turn end;
// only the session survives.
type WorkflowState struct {
	Query      string
	SessionKey string
	Session    *ConversationSession

	// Written by the classifier.
	Intents       IntentSet
	EntityHint    string
	TimeframeHint string
	Detail        DetailLevel

	// Written by the resolver.
	Candidates  []ResolutionCandidate
	Entities    []EntityRef
	FromMemory  bool
	Suggestions []Suggestion

	// Written by the fetcher, aligned by entity.
	Data  []EntityData
	Chart *ChartSeries

	// Written by the merger.
	Reply *Reply

	StartedAt time.Time
}

// NewWorkflowState opens a turn.
func NewWorkflowState(query, sessionKey string, session *ConversationSession) *WorkflowState {
	return &WorkflowState{
		Query:      query,
		SessionKey: sessionKey,
		Session:    session,
		Detail:     DetailMedium,
		StartedAt:  time.Now(),
	}
}

// Primary returns the top-confidence resolved entity, if any.
func (st *WorkflowState) Primary() *EntityRef {
	if len(st.Entities) == 0 {
		return nil
	}
	return &st.Entities[0]
}

// HasData reports whether any provider branch produced something.
func (st *WorkflowState) HasData() bool {
	if st.Chart != nil {
		return true
	}
	for _, d := range st.Data {
		if d.Stock != nil || len(d.News) > 0 {
			return true
		}
	}
	return false
}
