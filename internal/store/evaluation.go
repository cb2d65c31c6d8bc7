package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"ideaforge.app/evaluator/common/id"
	"ideaforge.app/evaluator/internal/model"
	"ideaforge.app/evaluator/internal/scoring"
)

type evaluationStore struct {
	db DBTX
}

var criterionColumns = []string{
	"technical_feasibility",
	"financial_viability",
	"market_potential",
	"strategic_alignment",
	"innovation_level",
}

// mergedOverallExpr recomputes overall_score inside the conflict-update
// branch from the merged criteria (incoming value when provided, stored
// value otherwise). ROUND on numeric rounds half away from zero, matching
// the Go-side rounding on insert.
func mergedOverallExpr() string {
	merged := make([]string, len(criterionColumns))
	sums := make([]string, len(criterionColumns))
	counts := make([]string, len(criterionColumns))
	for i, col := range criterionColumns {
		merged[i] = fmt.Sprintf("COALESCE(EXCLUDED.%s, evaluations.%s)", col, col)
		sums[i] = fmt.Sprintf("COALESCE(%s, 0)", merged[i])
		counts[i] = fmt.Sprintf("(%s IS NOT NULL)::int", merged[i])
	}
	return fmt.Sprintf(
		"COALESCE(ROUND((%s)::numeric / NULLIF(%s, 0)), 0)::int",
		strings.Join(sums, " + "),
		strings.Join(counts, " + "),
	)
}

func upsertSetClause() string {
	parts := make([]string, 0, len(criterionColumns)+5)
	for _, col := range criterionColumns {
		parts = append(parts, fmt.Sprintf("%s = COALESCE(EXCLUDED.%s, evaluations.%s)", col, col, col))
	}
	// EXCLUDED.comments is never NULL (the insert path defaults it to ''),
	// so an omitted comment is detected via the bind parameter instead.
	parts = append(parts,
		"overall_score = "+mergedOverallExpr(),
		"comments = CASE WHEN $11::text IS NULL THEN evaluations.comments ELSE EXCLUDED.comments END",
		"recommendations = CASE WHEN $12::text IS NULL THEN evaluations.recommendations ELSE EXCLUDED.recommendations END",
		"metadata = COALESCE(EXCLUDED.metadata, evaluations.metadata)",
		"evaluation_date = now()",
		"updated_at = now()",
	)
	return strings.Join(parts, ",\n\t\t")
}

const evaluationColumns = `id, idea_id, evaluator_id, evaluator_type,
	technical_feasibility, financial_viability, market_potential,
	strategic_alignment, innovation_level, overall_score,
	comments, recommendations, status, metadata,
	evaluation_date, created_at, updated_at`

func upsertQuery(conflictTarget string) string {
	return fmt.Sprintf(`
	INSERT INTO evaluations (
		id, idea_id, evaluator_id, evaluator_type,
		technical_feasibility, financial_viability, market_potential,
		strategic_alignment, innovation_level, overall_score,
		comments, recommendations, status, metadata
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, COALESCE($11, ''), COALESCE($12, ''), $13, $14)
	ON CONFLICT %s DO UPDATE SET
		%s
	RETURNING %s, (xmax = 0) AS inserted`,
		conflictTarget, upsertSetClause(), evaluationColumns)
}

var (
	upsertHumanQuery = upsertQuery("(idea_id, evaluator_id) WHERE evaluator_id IS NOT NULL")
	upsertAIQuery    = upsertQuery("(idea_id) WHERE evaluator_type = 'ai_assistant'")
)

func (s *evaluationStore) Upsert(ctx context.Context, params EvaluationUpsert) (*model.Evaluation, bool, error) {
	query := upsertHumanQuery
	if params.EvaluatorID == nil {
		query = upsertAIQuery
	}

	var metadata []byte
	if params.Metadata != nil {
		var err error
		metadata, err = json.Marshal(params.Metadata)
		if err != nil {
			return nil, false, fmt.Errorf("marshaling metadata: %w", err)
		}
	}

	evaluatorType := params.EvaluatorType
	if evaluatorType == "" {
		evaluatorType = model.EvaluatorTypeHuman
	}

	row := s.db.QueryRow(ctx, query,
		id.New(),
		params.IdeaID,
		params.EvaluatorID,
		string(evaluatorType),
		params.Scores.TechnicalFeasibility,
		params.Scores.FinancialViability,
		params.Scores.MarketPotential,
		params.Scores.StrategicAlignment,
		params.Scores.InnovationLevel,
		scoring.Overall(params.Scores),
		params.Comments,
		params.Recommendations,
		string(model.EvaluationStatusCompleted),
		metadata,
	)

	eval, inserted, err := scanEvaluationWithInserted(row)
	if err != nil {
		return nil, false, err
	}
	return eval, inserted, nil
}

func (s *evaluationStore) ListByIdea(ctx context.Context, ideaID int64) ([]model.Evaluation, error) {
	rows, err := s.db.Query(ctx, `
	SELECT `+evaluationColumns+`
	FROM evaluations
	WHERE idea_id = $1
	ORDER BY created_at`, ideaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evals []model.Evaluation
	for rows.Next() {
		eval, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evals = append(evals, *eval)
	}
	return evals, rows.Err()
}

type evaluationRow struct {
	eval     model.Evaluation
	metadata []byte
}

func (r *evaluationRow) dests(extra ...any) []any {
	dests := []any{
		&r.eval.ID,
		&r.eval.IdeaID,
		&r.eval.EvaluatorID,
		&r.eval.EvaluatorType,
		&r.eval.TechnicalFeasibility,
		&r.eval.FinancialViability,
		&r.eval.MarketPotential,
		&r.eval.StrategicAlignment,
		&r.eval.InnovationLevel,
		&r.eval.OverallScore,
		&r.eval.Comments,
		&r.eval.Recommendations,
		&r.eval.Status,
		&r.metadata,
		&r.eval.EvaluationDate,
		&r.eval.CreatedAt,
		&r.eval.UpdatedAt,
	}
	return append(dests, extra...)
}

func (r *evaluationRow) finish() (*model.Evaluation, error) {
	if len(r.metadata) > 0 {
		var meta model.EvaluationMetadata
		if err := json.Unmarshal(r.metadata, &meta); err != nil {
			return nil, fmt.Errorf("unmarshaling evaluation metadata: %w", err)
		}
		r.eval.Metadata = &meta
	}
	return &r.eval, nil
}

func scanEvaluation(row pgx.Row) (*model.Evaluation, error) {
	var r evaluationRow
	if err := row.Scan(r.dests()...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r.finish()
}

func scanEvaluationWithInserted(row pgx.Row) (*model.Evaluation, bool, error) {
	var r evaluationRow
	var inserted bool
	if err := row.Scan(r.dests(&inserted)...); err != nil {
		return nil, false, err
	}
	eval, err := r.finish()
	return eval, inserted, err
}
