package service

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"ideaforge.app/evaluator/internal/model"
	"ideaforge.app/evaluator/internal/scoring"
	"ideaforge.app/evaluator/internal/store"
)

// Submission actions reported back to the caller.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// SubmissionInput is one evaluator's scores and notes for an idea. Nil
// criterion scores are "not provided" and leave any stored value untouched
// on resubmission.
type SubmissionInput struct {
	Scores          model.CriterionScores
	Comments        *string
	Recommendations *string
}

type SubmissionResult struct {
	Evaluation *model.Evaluation `json:"evaluation"`
	Action     string            `json:"action"`
}

// StatusReport is the progress view of an idea's evaluation workflow.
type StatusReport struct {
	IdeaID           int64                      `json:"idea_id"`
	EvaluationStatus model.IdeaEvaluationStatus `json:"evaluation_status,omitempty"`
	Assignments      []model.Assignment         `json:"assignments"`
	Evaluations      []model.Evaluation         `json:"evaluations"`
	Aggregate        model.AggregateScores      `json:"aggregate"`
	TotalAssigned    int                        `json:"total_assigned"`
	TotalSubmitted   int                        `json:"total_submitted"`
	ProgressPercent  int                        `json:"progress_percent"`
}

// EvaluationService accepts evaluator submissions and reports workflow
// progress. Submissions are accepted even after an idea is finalized; the
// summary is only refreshed by a later finalization.
type EvaluationService interface {
	Submit(ctx context.Context, ideaID, evaluatorID int64, input SubmissionInput) (*SubmissionResult, error)
	Status(ctx context.Context, ideaID int64) (*StatusReport, error)
}

type evaluationService struct {
	ideas       store.IdeaStore
	evaluations store.EvaluationStore
	assignments store.AssignmentStore
	evaluators  store.EvaluatorStore
	notifier    Notifier
	analytics   Analytics
	completion  CompletionChecker
}

func NewEvaluationService(
	ideas store.IdeaStore,
	evaluations store.EvaluationStore,
	assignments store.AssignmentStore,
	evaluators store.EvaluatorStore,
	notifier Notifier,
	analytics Analytics,
	completion CompletionChecker,
) EvaluationService {
	return &evaluationService{
		ideas:       ideas,
		evaluations: evaluations,
		assignments: assignments,
		evaluators:  evaluators,
		notifier:    notifier,
		analytics:   analytics,
		completion:  completion,
	}
}

func (s *evaluationService) Submit(ctx context.Context, ideaID, evaluatorID int64, input SubmissionInput) (*SubmissionResult, error) {
	if ideaID <= 0 {
		return nil, ValidationError("idea_id is required")
	}
	if evaluatorID <= 0 {
		return nil, ValidationError("evaluator_id is required")
	}
	if err := validateScores(input.Scores); err != nil {
		return nil, err
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

	eval, created, err := s.evaluations.Upsert(ctx, store.EvaluationUpsert{
		IdeaID:          ideaID,
		EvaluatorID:     &evaluatorID,
		EvaluatorType:   model.EvaluatorTypeHuman,
		Scores:          input.Scores,
		Comments:        input.Comments,
		Recommendations: input.Recommendations,
	})
	if err != nil {
		return nil, PersistenceError("saving evaluation", err)
	}

	if err := s.ideas.MarkInProgress(ctx, ideaID); err != nil {
		slog.WarnContext(ctx, "failed to mark idea in progress", "idea_id", ideaID, "error", err)
	}

	action := ActionUpdated
	event := "evaluation_updated"
	if created {
		action = ActionCreated
		event = "evaluation_submitted"
	}

	slog.InfoContext(ctx, "evaluation saved",
		"idea_id", ideaID,
		"evaluator_id", evaluatorID,
		"evaluation_id", eval.ID,
		"action", action,
		"overall_score", eval.OverallScore,
	)

	s.notifier.Notify(ctx, ideaID, event, eval)
	s.analytics.Track(ctx, ideaID, event, map[string]any{
		"evaluation_id": eval.ID,
		"evaluator_id":  evaluatorID,
		"overall_score": eval.OverallScore,
	})
	if created {
		s.completion.EvaluationSubmitted(ctx, ideaID)
	}

	return &SubmissionResult{Evaluation: eval, Action: action}, nil
}

func (s *evaluationService) Status(ctx context.Context, ideaID int64) (*StatusReport, error) {
	if ideaID <= 0 {
		return nil, ValidationError("idea_id is required")
	}

	idea, err := s.ideas.GetByID(ctx, ideaID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NotFoundError("idea %d not found", ideaID)
		}
		return nil, PersistenceError("loading idea", err)
	}

	assignments, err := s.assignments.ListByIdea(ctx, ideaID)
	if err != nil {
		return nil, PersistenceError("listing assignments", err)
	}
	evaluations, err := s.evaluations.ListByIdea(ctx, ideaID)
	if err != nil {
		return nil, PersistenceError("listing evaluations", err)
	}

	// Progress counts every evaluation, AI ones included, against the
	// assignment total, so it can exceed 100 when unassigned evaluators
	// submit.
	progress := 0
	if len(assignments) > 0 {
		progress = int(math.Round(float64(len(evaluations)) / float64(len(assignments)) * 100))
	}

	report := &StatusReport{
		IdeaID:           ideaID,
		EvaluationStatus: idea.EvaluationStatus,
		Assignments:      assignments,
		Evaluations:      evaluations,
		Aggregate:        scoring.Aggregate(evaluations),
		TotalAssigned:    len(assignments),
		TotalSubmitted:   len(evaluations),
		ProgressPercent:  progress,
	}
	return report, nil
}

func validateScores(scores model.CriterionScores) error {
	for _, c := range []struct {
		name  string
		value *int
	}{
		{"technical_feasibility", scores.TechnicalFeasibility},
		{"financial_viability", scores.FinancialViability},
		{"market_potential", scores.MarketPotential},
		{"strategic_alignment", scores.StrategicAlignment},
		{"innovation_level", scores.InnovationLevel},
	} {
		if c.value != nil && (*c.value < 1 || *c.value > 10) {
			return ValidationError("%s must be between 1 and 10, got %d", c.name, *c.value)
		}
	}
	if len(scores.Present()) == 0 {
		return ValidationError("at least one criterion score is required")
	}
	return nil
}
