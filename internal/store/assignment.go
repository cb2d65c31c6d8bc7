package store

import (
	"context"

	"ideaforge.app/evaluator/internal/model"
)

type assignmentStore struct {
	db DBTX
}

func (s *assignmentStore) Create(ctx context.Context, assignment *model.Assignment) error {
	row := s.db.QueryRow(ctx, `
	INSERT INTO evaluation_assignments (
		id, idea_id, evaluator_id, status, priority, due_date, evaluation_criteria, assigned_by
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at`,
		assignment.ID,
		assignment.IdeaID,
		assignment.EvaluatorID,
		string(assignment.Status),
		string(assignment.Priority),
		assignment.DueDate,
		assignment.Criteria,
		assignment.AssignedBy,
	)
	return row.Scan(&assignment.CreatedAt)
}

func (s *assignmentStore) ListByIdea(ctx context.Context, ideaID int64) ([]model.Assignment, error) {
	rows, err := s.db.Query(ctx, `
	SELECT id, idea_id, evaluator_id, status, priority, due_date, evaluation_criteria, assigned_by, created_at
	FROM evaluation_assignments
	WHERE idea_id = $1
	ORDER BY created_at`, ideaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(
			&a.ID,
			&a.IdeaID,
			&a.EvaluatorID,
			&a.Status,
			&a.Priority,
			&a.DueDate,
			&a.Criteria,
			&a.AssignedBy,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
