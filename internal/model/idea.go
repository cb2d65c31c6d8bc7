package model

import "time"

// IdeaEvaluationStatus tracks where an idea is in the evaluation lifecycle.
// The empty string means evaluation has not started.
type IdeaEvaluationStatus string

const (
	IdeaEvaluationInProgress IdeaEvaluationStatus = "in_progress"
	IdeaEvaluationCompleted  IdeaEvaluationStatus = "completed"
)

// Idea is the submitted innovation entity being scored. The evaluation
// fields are owned by the finalization flow and set exactly once (or
// replaced, depending on the configured finalize mode).
type Idea struct {
	ID                    int64                `json:"id"`
	Title                 string               `json:"title"`
	Description           string               `json:"description"`
	ProposedApproach      string               `json:"proposed_approach"`
	ImplementationPlan    string               `json:"implementation_plan"`
	EvaluationStatus      IdeaEvaluationStatus `json:"evaluation_status,omitempty"`
	FinalEvaluationScore  *int                 `json:"final_evaluation_score,omitempty"`
	EvaluationDecision    *Decision            `json:"evaluation_decision,omitempty"`
	EvaluationCompletedAt *time.Time           `json:"evaluation_completed_at,omitempty"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
}
