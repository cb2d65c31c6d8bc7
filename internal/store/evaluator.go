package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"ideaforge.app/evaluator/internal/model"
)

type evaluatorStore struct {
	db DBTX
}

func (s *evaluatorStore) GetByID(ctx context.Context, id int64) (*model.EvaluatorProfile, error) {
	row := s.db.QueryRow(ctx, `
	SELECT id, name, email, created_at
	FROM evaluator_profiles
	WHERE id = $1`, id)

	var p model.EvaluatorProfile
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *evaluatorStore) ListByIDs(ctx context.Context, ids []int64) ([]model.EvaluatorProfile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.db.Query(ctx, `
	SELECT id, name, email, created_at
	FROM evaluator_profiles
	WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []model.EvaluatorProfile
	for rows.Next() {
		var p model.EvaluatorProfile
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.CreatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
