package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ideaforge.app/evaluator/common/id"
	"ideaforge.app/evaluator/internal/model"
	"ideaforge.app/evaluator/internal/store"
)

// AssignmentOptions are the optional fields of an assignment. Zero values
// fall back to defaults: priority medium, the five standard criteria, no due
// date.
type AssignmentOptions struct {
	Priority   model.AssignmentPriority
	DueDate    *time.Time
	Criteria   []string
	AssignedBy *int64
}

// BulkAssignEntry is the outcome for one (idea, evaluator) pair of a bulk
// assignment. Exactly one of Assignment and Error is set.
type BulkAssignEntry struct {
	IdeaID      int64             `json:"idea_id"`
	EvaluatorID int64             `json:"evaluator_id"`
	Assignment  *model.Assignment `json:"assignment,omitempty"`
	Error       string            `json:"error,omitempty"`
}

type BulkAssignResult struct {
	TotalAssignments int               `json:"total_assignments"`
	Successful       int               `json:"successful"`
	Failed           int               `json:"failed"`
	Entries          []BulkAssignEntry `json:"entries"`
}

type AssignmentService interface {
	Assign(ctx context.Context, ideaID, evaluatorID int64, opts AssignmentOptions) (*model.Assignment, error)
	// BulkAssign creates one assignment per (idea, evaluator) pair. Pairs
	// fail independently; a failure never rolls back or skips the rest.
	BulkAssign(ctx context.Context, ideaIDs, evaluatorIDs []int64, opts AssignmentOptions) (*BulkAssignResult, error)
}

type assignmentService struct {
	ideas       store.IdeaStore
	evaluators  store.EvaluatorStore
	assignments store.AssignmentStore
	notifier    Notifier
	analytics   Analytics
}

func NewAssignmentService(
	ideas store.IdeaStore,
	evaluators store.EvaluatorStore,
	assignments store.AssignmentStore,
	notifier Notifier,
	analytics Analytics,
) AssignmentService {
	return &assignmentService{
		ideas:       ideas,
		evaluators:  evaluators,
		assignments: assignments,
		notifier:    notifier,
		analytics:   analytics,
	}
}

func (s *assignmentService) Assign(ctx context.Context, ideaID, evaluatorID int64, opts AssignmentOptions) (*model.Assignment, error) {
	if ideaID <= 0 {
		return nil, ValidationError("idea_id is required")
	}
	if evaluatorID <= 0 {
		return nil, ValidationError("evaluator_id is required")
	}

	priority := opts.Priority
	if priority == "" {
		priority = model.AssignmentPriorityMedium
	}
	switch priority {
	case model.AssignmentPriorityLow, model.AssignmentPriorityMedium, model.AssignmentPriorityHigh:
	default:
		return nil, ValidationError("invalid priority %q", priority)
	}

	criteria := opts.Criteria
	if len(criteria) == 0 {
		criteria = model.DefaultCriteria
	}

	if _, err := s.ideas.GetByID(ctx, ideaID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NotFoundError("idea %d not found", ideaID)
		}
		return nil, PersistenceError("loading idea", err)
	}
	if _, err := s.evaluators.GetByID(ctx, evaluatorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NotFoundError("evaluator %d not found", evaluatorID)
		}
		return nil, PersistenceError("loading evaluator", err)
	}

	assignment := &model.Assignment{
		ID:          id.New(),
		IdeaID:      ideaID,
		EvaluatorID: evaluatorID,
		Status:      model.AssignmentStatusPending,
		Priority:    priority,
		DueDate:     opts.DueDate,
		Criteria:    criteria,
		AssignedBy:  opts.AssignedBy,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, PersistenceError("creating assignment", err)
	}

	slog.InfoContext(ctx, "evaluator assigned",
		"idea_id", ideaID,
		"evaluator_id", evaluatorID,
		"assignment_id", assignment.ID,
		"priority", priority,
	)

	s.notifier.Notify(ctx, ideaID, "evaluator_assigned", assignment)
	s.analytics.Track(ctx, ideaID, "evaluator_assigned", map[string]any{
		"assignment_id": assignment.ID,
		"evaluator_id":  evaluatorID,
	})

	return assignment, nil
}

func (s *assignmentService) BulkAssign(ctx context.Context, ideaIDs, evaluatorIDs []int64, opts AssignmentOptions) (*BulkAssignResult, error) {
	if len(ideaIDs) == 0 {
		return nil, ValidationError("at least one idea_id is required")
	}
	if len(evaluatorIDs) == 0 {
		return nil, ValidationError("at least one evaluator_id is required")
	}

	result := &BulkAssignResult{
		TotalAssignments: len(ideaIDs) * len(evaluatorIDs),
		Entries:          make([]BulkAssignEntry, 0, len(ideaIDs)*len(evaluatorIDs)),
	}

	for _, ideaID := range ideaIDs {
		for _, evaluatorID := range evaluatorIDs {
			entry := BulkAssignEntry{IdeaID: ideaID, EvaluatorID: evaluatorID}
			assignment, err := s.Assign(ctx, ideaID, evaluatorID, opts)
			if err != nil {
				entry.Error = MessageOf(err)
				result.Failed++
				slog.WarnContext(ctx, "bulk assignment pair failed",
					"idea_id", ideaID,
					"evaluator_id", evaluatorID,
					"error", err,
				)
			} else {
				entry.Assignment = assignment
				result.Successful++
			}
			result.Entries = append(result.Entries, entry)
		}
	}

	slog.InfoContext(ctx, "bulk assignment completed",
		"total", result.TotalAssignments,
		"successful", result.Successful,
		"failed", result.Failed,
	)

	return result, nil
}
