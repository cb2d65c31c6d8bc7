package store

import (
	"context"
	"errors"

	"ideaforge.app/evaluator/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// EvaluationUpsert carries one evaluator's submission. Nil criterion scores
// are "not provided": on update they leave the stored value untouched.
type EvaluationUpsert struct {
	IdeaID          int64
	EvaluatorID     *int64 // nil for AI evaluations
	EvaluatorType   model.EvaluatorType
	Scores          model.CriterionScores
	Comments        *string
	Recommendations *string
	Metadata        *model.EvaluationMetadata
}

// EvaluationStore defines the contract for evaluation data access.
// Upsert is atomic: concurrent submissions for the same (idea, evaluator)
// pair never produce two rows.
type EvaluationStore interface {
	// Upsert inserts or updates the evaluation for (IdeaID, EvaluatorID),
	// recomputing overall_score from the merged criteria. The returned bool
	// is true when a new row was created.
	Upsert(ctx context.Context, params EvaluationUpsert) (*model.Evaluation, bool, error)
	ListByIdea(ctx context.Context, ideaID int64) ([]model.Evaluation, error)
}

// AssignmentStore defines the contract for evaluator assignment data access
type AssignmentStore interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	ListByIdea(ctx context.Context, ideaID int64) ([]model.Assignment, error)
}

// SummaryStore defines the contract for finalization summary data access
type SummaryStore interface {
	Create(ctx context.Context, summary *model.Summary) error
	// Replace upserts the summary for its idea, keeping at most one row.
	Replace(ctx context.Context, summary *model.Summary) error
	GetByIdea(ctx context.Context, ideaID int64) (*model.Summary, error)
}

// IdeaStore defines the contract for idea data access. Only the evaluation
// fields are written by this service; the rest of the idea is owned by the
// wider platform.
type IdeaStore interface {
	GetByID(ctx context.Context, id int64) (*model.Idea, error)
	SetEvaluationResult(ctx context.Context, id int64, score int, decision model.Decision) error
	MarkInProgress(ctx context.Context, id int64) error
}

// EvaluatorStore provides read access to evaluator display profiles
type EvaluatorStore interface {
	GetByID(ctx context.Context, id int64) (*model.EvaluatorProfile, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.EvaluatorProfile, error)
}

// EventLogStore appends to the workflow analytics event log
type EventLogStore interface {
	Append(ctx context.Context, event *model.WorkflowEvent) error
}
