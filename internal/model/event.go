package model

import (
	"encoding/json"
	"time"
)

// WorkflowEvent is one row of the append-only analytics event log.
type WorkflowEvent struct {
	ID        int64           `json:"id"`
	IdeaID    int64           `json:"idea_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
