package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"ideaforge.app/evaluator/internal/model"
)

type summaryStore struct {
	db DBTX
}

const summaryInsertColumns = `
		id, idea_id, average_overall_score, average_technical_feasibility,
		average_financial_viability, average_market_potential,
		average_strategic_alignment, average_innovation_level,
		evaluation_count, decision, threshold_met, generated_by`

func (s *summaryStore) Create(ctx context.Context, summary *model.Summary) error {
	row := s.db.QueryRow(ctx, `
	INSERT INTO evaluation_summaries (`+summaryInsertColumns+`
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING created_at`, summaryArgs(summary)...)
	return row.Scan(&summary.CreatedAt)
}

func (s *summaryStore) Replace(ctx context.Context, summary *model.Summary) error {
	row := s.db.QueryRow(ctx, `
	INSERT INTO evaluation_summaries (`+summaryInsertColumns+`
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (idea_id) DO UPDATE SET
		average_overall_score = EXCLUDED.average_overall_score,
		average_technical_feasibility = EXCLUDED.average_technical_feasibility,
		average_financial_viability = EXCLUDED.average_financial_viability,
		average_market_potential = EXCLUDED.average_market_potential,
		average_strategic_alignment = EXCLUDED.average_strategic_alignment,
		average_innovation_level = EXCLUDED.average_innovation_level,
		evaluation_count = EXCLUDED.evaluation_count,
		decision = EXCLUDED.decision,
		threshold_met = EXCLUDED.threshold_met,
		generated_by = EXCLUDED.generated_by,
		created_at = now()
	RETURNING id, created_at`, summaryArgs(summary)...)
	return row.Scan(&summary.ID, &summary.CreatedAt)
}

func (s *summaryStore) GetByIdea(ctx context.Context, ideaID int64) (*model.Summary, error) {
	row := s.db.QueryRow(ctx, `
	SELECT id, idea_id, average_overall_score, average_technical_feasibility,
		average_financial_viability, average_market_potential,
		average_strategic_alignment, average_innovation_level,
		evaluation_count, decision, threshold_met, generated_by, created_at
	FROM evaluation_summaries
	WHERE idea_id = $1`, ideaID)

	var sum model.Summary
	if err := row.Scan(
		&sum.ID,
		&sum.IdeaID,
		&sum.Scores.AverageOverallScore,
		&sum.Scores.AverageTechnicalFeasibility,
		&sum.Scores.AverageFinancialViability,
		&sum.Scores.AverageMarketPotential,
		&sum.Scores.AverageStrategicAlignment,
		&sum.Scores.AverageInnovationLevel,
		&sum.Scores.EvaluationCount,
		&sum.Decision,
		&sum.ThresholdMet,
		&sum.GeneratedBy,
		&sum.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sum, nil
}

func summaryArgs(summary *model.Summary) []any {
	return []any{
		summary.ID,
		summary.IdeaID,
		summary.Scores.AverageOverallScore,
		summary.Scores.AverageTechnicalFeasibility,
		summary.Scores.AverageFinancialViability,
		summary.Scores.AverageMarketPotential,
		summary.Scores.AverageStrategicAlignment,
		summary.Scores.AverageInnovationLevel,
		summary.Scores.EvaluationCount,
		string(summary.Decision),
		summary.ThresholdMet,
		summary.GeneratedBy,
	}
}
