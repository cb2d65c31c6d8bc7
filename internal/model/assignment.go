package model

import "time"

type AssignmentStatus string

const (
	AssignmentStatusPending   AssignmentStatus = "pending"
	AssignmentStatusCompleted AssignmentStatus = "completed"
)

type AssignmentPriority string

const (
	AssignmentPriorityLow    AssignmentPriority = "low"
	AssignmentPriorityMedium AssignmentPriority = "medium"
	AssignmentPriorityHigh   AssignmentPriority = "high"
)

// DefaultCriteria is the fixed set of criterion names assignments carry
// unless the caller overrides them.
var DefaultCriteria = []string{
	"technical_feasibility",
	"financial_viability",
	"market_potential",
	"strategic_alignment",
	"innovation_level",
}

// Assignment records that an evaluator is expected to evaluate an idea.
// Submissions are not checked against assignments; an evaluation may exist
// without one.
type Assignment struct {
	ID          int64              `json:"id"`
	IdeaID      int64              `json:"idea_id"`
	EvaluatorID int64              `json:"evaluator_id"`
	Status      AssignmentStatus   `json:"status"`
	Priority    AssignmentPriority `json:"priority"`
	DueDate     *time.Time         `json:"due_date,omitempty"`
	Criteria    []string           `json:"evaluation_criteria"`
	AssignedBy  *int64             `json:"assigned_by,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}
