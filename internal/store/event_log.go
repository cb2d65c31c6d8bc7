package store

import (
	"context"

	"ideaforge.app/evaluator/internal/model"
)

type eventLogStore struct {
	db DBTX
}

func (s *eventLogStore) Append(ctx context.Context, event *model.WorkflowEvent) error {
	row := s.db.QueryRow(ctx, `
	INSERT INTO workflow_events (id, idea_id, event_type, payload)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at`,
		event.ID,
		event.IdeaID,
		event.EventType,
		[]byte(event.Payload),
	)
	return row.Scan(&event.CreatedAt)
}
