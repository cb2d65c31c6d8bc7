package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"ideaforge.app/evaluator/internal/model"
)

type ideaStore struct {
	db DBTX
}

func (s *ideaStore) GetByID(ctx context.Context, id int64) (*model.Idea, error) {
	row := s.db.QueryRow(ctx, `
	SELECT id, title, description, proposed_approach, implementation_plan,
		evaluation_status, final_evaluation_score, evaluation_decision,
		evaluation_completed_at, created_at, updated_at
	FROM ideas
	WHERE id = $1`, id)

	var idea model.Idea
	var status *string
	var decision *string
	if err := row.Scan(
		&idea.ID,
		&idea.Title,
		&idea.Description,
		&idea.ProposedApproach,
		&idea.ImplementationPlan,
		&status,
		&idea.FinalEvaluationScore,
		&decision,
		&idea.EvaluationCompletedAt,
		&idea.CreatedAt,
		&idea.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if status != nil {
		idea.EvaluationStatus = model.IdeaEvaluationStatus(*status)
	}
	if decision != nil {
		d := model.Decision(*decision)
		idea.EvaluationDecision = &d
	}
	return &idea, nil
}

func (s *ideaStore) SetEvaluationResult(ctx context.Context, id int64, score int, decision model.Decision) error {
	tag, err := s.db.Exec(ctx, `
	UPDATE ideas SET
		evaluation_status = $2,
		final_evaluation_score = $3,
		evaluation_decision = $4,
		evaluation_completed_at = now(),
		updated_at = now()
	WHERE id = $1`,
		id, string(model.IdeaEvaluationCompleted), score, string(decision))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ideaStore) MarkInProgress(ctx context.Context, id int64) error {
	_, err := s.db.Exec(ctx, `
	UPDATE ideas SET
		evaluation_status = $2,
		updated_at = now()
	WHERE id = $1 AND evaluation_status IS DISTINCT FROM $3`,
		id, string(model.IdeaEvaluationInProgress), string(model.IdeaEvaluationCompleted))
	return err
}
