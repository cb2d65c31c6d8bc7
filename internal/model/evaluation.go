package model

import "time"

type EvaluatorType string

const (
	EvaluatorTypeHuman EvaluatorType = "human"
	EvaluatorTypeAI    EvaluatorType = "ai_assistant"
)

type EvaluationStatus string

const (
	EvaluationStatusCompleted EvaluationStatus = "completed"
)

// CriterionScores holds the five criterion scores, each 1-10 when present.
// A nil score means the evaluator did not score that criterion.
type CriterionScores struct {
	TechnicalFeasibility *int `json:"technical_feasibility,omitempty"`
	FinancialViability   *int `json:"financial_viability,omitempty"`
	MarketPotential      *int `json:"market_potential,omitempty"`
	StrategicAlignment   *int `json:"strategic_alignment,omitempty"`
	InnovationLevel      *int `json:"innovation_level,omitempty"`
}

// Present returns the non-nil scores, in criterion order.
func (s CriterionScores) Present() []int {
	var out []int
	for _, v := range []*int{
		s.TechnicalFeasibility,
		s.FinancialViability,
		s.MarketPotential,
		s.StrategicAlignment,
		s.InnovationLevel,
	} {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// EvaluationMetadata carries qualitative AI output alongside the scores.
type EvaluationMetadata struct {
	AIGenerated  bool     `json:"ai_generated"`
	Strengths    []string `json:"strengths,omitempty"`
	Improvements []string `json:"improvements,omitempty"`
}

// Evaluation is one evaluator's scores for one idea. At most one row exists
// per (idea, evaluator) pair; resubmission updates in place. AI evaluations
// have a nil EvaluatorID and EvaluatorType "ai_assistant", at most one per
// idea. OverallScore is always the rounded mean of the present criteria,
// recomputed on every write.
type Evaluation struct {
	ID            int64         `json:"id"`
	IdeaID        int64         `json:"idea_id"`
	EvaluatorID   *int64        `json:"evaluator_id,omitempty"`
	EvaluatorType EvaluatorType `json:"evaluator_type"`
	CriterionScores
	OverallScore    int                 `json:"overall_score"`
	Comments        string              `json:"comments,omitempty"`
	Recommendations string              `json:"recommendations,omitempty"`
	Status          EvaluationStatus    `json:"status"`
	Metadata        *EvaluationMetadata `json:"metadata,omitempty"`
	EvaluationDate  time.Time           `json:"evaluation_date"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}
