package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"ideaforge.app/evaluator/common/llm"
	"ideaforge.app/evaluator/common/logger"
	"ideaforge.app/evaluator/internal/model"
	"ideaforge.app/evaluator/internal/store"
)

// aiEvaluationResponse is the JSON object the scoring model is asked to
// produce. Its schema is embedded in the prompt.
type aiEvaluationResponse struct {
	TechnicalFeasibility int      `json:"technical_feasibility" jsonschema:"minimum=1,maximum=10"`
	FinancialViability   int      `json:"financial_viability" jsonschema:"minimum=1,maximum=10"`
	MarketPotential      int      `json:"market_potential" jsonschema:"minimum=1,maximum=10"`
	StrategicAlignment   int      `json:"strategic_alignment" jsonschema:"minimum=1,maximum=10"`
	InnovationLevel      int      `json:"innovation_level" jsonschema:"minimum=1,maximum=10"`
	OverallAssessment    string   `json:"overall_assessment"`
	Strengths            []string `json:"strengths"`
	Improvements         []string `json:"improvements"`
	Recommendations      []string `json:"recommendations"`
}

const aiEvaluatorSystemPrompt = `You are an experienced innovation evaluator for a corporate idea management program. You score submitted ideas rigorously and consistently, justify your assessment, and respond only with the requested JSON object.`

type AIEvaluationService interface {
	// Evaluate scores an idea with the configured LLM and persists the
	// result as the idea's single AI evaluation.
	Evaluate(ctx context.Context, ideaID int64) (*model.Evaluation, error)
}

type aiEvaluationService struct {
	ideas       store.IdeaStore
	evaluations store.EvaluationStore
	client      llm.Client // nil when no scoring LLM is configured
	analytics   Analytics
}

func NewAIEvaluationService(
	ideas store.IdeaStore,
	evaluations store.EvaluationStore,
	client llm.Client,
	analytics Analytics,
) AIEvaluationService {
	return &aiEvaluationService{
		ideas:       ideas,
		evaluations: evaluations,
		client:      client,
		analytics:   analytics,
	}
}

func (s *aiEvaluationService) Evaluate(ctx context.Context, ideaID int64) (*model.Evaluation, error) {
	if s.client == nil {
		return nil, ConfigurationError("AI evaluation is not configured: set SCORING_LLM_API_KEY")
	}
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

	raw, err := s.client.Complete(ctx, aiEvaluatorSystemPrompt, buildScoringPrompt(idea))
	if err != nil {
		return nil, ExternalServiceError("AI evaluation failed", err)
	}

	parsed, err := parseScoringResponse(raw)
	if err != nil {
		slog.WarnContext(ctx, "rejecting malformed AI evaluation response",
			"idea_id", ideaID,
			"model", s.client.Model(),
			"response", logger.Truncate(raw, 500),
			"error", err,
		)
		return nil, err
	}

	eval, _, err := s.evaluations.Upsert(ctx, store.EvaluationUpsert{
		IdeaID:        ideaID,
		EvaluatorType: model.EvaluatorTypeAI,
		Scores: model.CriterionScores{
			TechnicalFeasibility: &parsed.TechnicalFeasibility,
			FinancialViability:   &parsed.FinancialViability,
			MarketPotential:      &parsed.MarketPotential,
			StrategicAlignment:   &parsed.StrategicAlignment,
			InnovationLevel:      &parsed.InnovationLevel,
		},
		Comments:        &parsed.OverallAssessment,
		Recommendations: joinLines(parsed.Recommendations),
		Metadata: &model.EvaluationMetadata{
			AIGenerated:  true,
			Strengths:    parsed.Strengths,
			Improvements: parsed.Improvements,
		},
	})
	if err != nil {
		return nil, PersistenceError("saving AI evaluation", err)
	}

	if err := s.ideas.MarkInProgress(ctx, ideaID); err != nil {
		slog.WarnContext(ctx, "failed to mark idea in progress", "idea_id", ideaID, "error", err)
	}

	slog.InfoContext(ctx, "AI evaluation saved",
		"idea_id", ideaID,
		"evaluation_id", eval.ID,
		"overall_score", eval.OverallScore,
		"model", s.client.Model(),
	)

	s.analytics.Track(ctx, ideaID, "ai_evaluation_generated", map[string]any{
		"evaluation_id": eval.ID,
		"overall_score": eval.OverallScore,
		"model":         s.client.Model(),
	})

	return eval, nil
}

func buildScoringPrompt(idea *model.Idea) string {
	schema, _ := json.MarshalIndent(llm.GenerateSchemaFrom(aiEvaluationResponse{}), "", "  ")

	var b strings.Builder
	b.WriteString("Evaluate the following idea on five criteria, each scored as an integer from 1 (poor) to 10 (excellent).\n\n")
	fmt.Fprintf(&b, "Title: %s\n\n", idea.Title)
	fmt.Fprintf(&b, "Description:\n%s\n\n", idea.Description)
	if idea.ProposedApproach != "" {
		fmt.Fprintf(&b, "Proposed approach:\n%s\n\n", idea.ProposedApproach)
	}
	if idea.ImplementationPlan != "" {
		fmt.Fprintf(&b, "Implementation plan:\n%s\n\n", idea.ImplementationPlan)
	}
	b.WriteString("Criteria:\n")
	b.WriteString("- technical_feasibility: can this be built with realistic effort and known technology?\n")
	b.WriteString("- financial_viability: do the economics work (cost, revenue or savings potential)?\n")
	b.WriteString("- market_potential: how large and reachable is the audience or internal demand?\n")
	b.WriteString("- strategic_alignment: how well does it fit the organization's goals?\n")
	b.WriteString("- innovation_level: how novel is the idea relative to existing solutions?\n\n")
	b.WriteString("Respond with a single JSON object matching this schema, with no surrounding text:\n")
	b.Write(schema)
	return b.String()
}

func parseScoringResponse(raw string) (*aiEvaluationResponse, error) {
	cleaned := stripCodeFences(raw)

	var parsed aiEvaluationResponse
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, ValidationError("AI response is not valid JSON: %v", err)
	}

	for _, c := range []struct {
		name  string
		value int
	}{
		{"technical_feasibility", parsed.TechnicalFeasibility},
		{"financial_viability", parsed.FinancialViability},
		{"market_potential", parsed.MarketPotential},
		{"strategic_alignment", parsed.StrategicAlignment},
		{"innovation_level", parsed.InnovationLevel},
	} {
		if c.value < 1 || c.value > 10 {
			return nil, ValidationError("AI response score %s out of range: %d", c.name, c.value)
		}
	}
	return &parsed, nil
}

// stripCodeFences unwraps a ```json ... ``` (or bare ```) block if the model
// wrapped its answer in one.
func stripCodeFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func joinLines(lines []string) *string {
	if len(lines) == 0 {
		return nil
	}
	joined := strings.Join(lines, "\n")
	return &joined
}
