package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"ideaforge.app/evaluator/internal/model"
	"ideaforge.app/evaluator/internal/scoring"
	"ideaforge.app/evaluator/internal/store"
)

// ReportEvaluation is one evaluator's contribution as shown in the report.
type ReportEvaluation struct {
	EvaluatorName  string                `json:"evaluator_name"`
	EvaluatorType  model.EvaluatorType   `json:"evaluator_type"`
	Scores         model.CriterionScores `json:"scores"`
	OverallScore   int                   `json:"overall_score"`
	Comments       string                `json:"comments,omitempty"`
	EvaluationDate time.Time             `json:"evaluation_date"`
}

type Report struct {
	IdeaID          int64                 `json:"idea_id"`
	IdeaTitle       string                `json:"idea_title"`
	Scores          model.AggregateScores `json:"scores"`
	Evaluations     []ReportEvaluation    `json:"evaluations"`
	Recommendations []string              `json:"recommendations"`
	NextSteps       []string              `json:"next_steps"`
	GeneratedAt     time.Time             `json:"generated_at"`
}

type ReportService interface {
	Generate(ctx context.Context, ideaID int64) (*Report, error)
}

type reportService struct {
	ideas       store.IdeaStore
	evaluations store.EvaluationStore
	evaluators  store.EvaluatorStore
}

func NewReportService(ideas store.IdeaStore, evaluations store.EvaluationStore, evaluators store.EvaluatorStore) ReportService {
	return &reportService{
		ideas:       ideas,
		evaluations: evaluations,
		evaluators:  evaluators,
	}
}

func (s *reportService) Generate(ctx context.Context, ideaID int64) (*Report, error) {
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

	// An idea with no evaluations still gets a report: zero aggregates and
	// the lowest next-steps band.
	evaluations, err := s.evaluations.ListByIdea(ctx, ideaID)
	if err != nil {
		return nil, PersistenceError("listing evaluations", err)
	}

	names, err := s.evaluatorNames(ctx, evaluations)
	if err != nil {
		return nil, err
	}

	details := make([]ReportEvaluation, 0, len(evaluations))
	for _, e := range evaluations {
		name := "AI Assistant"
		if e.EvaluatorID != nil {
			name = names[*e.EvaluatorID]
			if name == "" {
				name = "Unknown evaluator"
			}
		}
		details = append(details, ReportEvaluation{
			EvaluatorName:  name,
			EvaluatorType:  e.EvaluatorType,
			Scores:         e.CriterionScores,
			OverallScore:   e.OverallScore,
			Comments:       e.Comments,
			EvaluationDate: e.EvaluationDate,
		})
	}

	scores := scoring.Aggregate(evaluations)

	return &Report{
		IdeaID:          ideaID,
		IdeaTitle:       idea.Title,
		Scores:          scores,
		Evaluations:     details,
		Recommendations: collectRecommendations(evaluations),
		NextSteps:       scoring.NextSteps(scores.AverageOverallScore),
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

func (s *reportService) evaluatorNames(ctx context.Context, evaluations []model.Evaluation) (map[int64]string, error) {
	var ids []int64
	seen := make(map[int64]bool)
	for _, e := range evaluations {
		if e.EvaluatorID != nil && !seen[*e.EvaluatorID] {
			seen[*e.EvaluatorID] = true
			ids = append(ids, *e.EvaluatorID)
		}
	}

	profiles, err := s.evaluators.ListByIDs(ctx, ids)
	if err != nil {
		return nil, PersistenceError("loading evaluator profiles", err)
	}

	names := make(map[int64]string, len(profiles))
	for _, p := range profiles {
		names[p.ID] = p.Name
	}
	return names, nil
}

// collectRecommendations splits each evaluation's recommendations on
// newlines and dedupes, keeping first-seen order.
func collectRecommendations(evaluations []model.Evaluation) []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range evaluations {
		for _, line := range strings.Split(e.Recommendations, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || seen[line] {
				continue
			}
			seen[line] = true
			out = append(out, line)
		}
	}
	return out
}
