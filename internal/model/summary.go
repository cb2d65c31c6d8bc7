package model

import "time"

// Decision is the classification derived from the aggregated overall score
// and a threshold.
type Decision string

const (
	DecisionApproved    Decision = "approved"
	DecisionConditional Decision = "conditional"
	DecisionRejected    Decision = "rejected"
)

// AggregateScores is the output of the aggregation engine: per-criterion and
// overall averages across all of an idea's evaluations, all integers rounded
// half away from zero. Every field is 0 when EvaluationCount is 0.
type AggregateScores struct {
	AverageOverallScore         int `json:"average_overall_score"`
	AverageTechnicalFeasibility int `json:"average_technical_feasibility"`
	AverageFinancialViability   int `json:"average_financial_viability"`
	AverageMarketPotential      int `json:"average_market_potential"`
	AverageStrategicAlignment   int `json:"average_strategic_alignment"`
	AverageInnovationLevel      int `json:"average_innovation_level"`
	EvaluationCount             int `json:"evaluation_count"`
}

// Summary is the immutable audit record written at finalization: the
// aggregated score snapshot, the decision, and who triggered it.
type Summary struct {
	ID           int64           `json:"id"`
	IdeaID       int64           `json:"idea_id"`
	Scores       AggregateScores `json:"scores"`
	Decision     Decision        `json:"decision"`
	ThresholdMet bool            `json:"threshold_met"`
	GeneratedBy  string          `json:"generated_by"`
	CreatedAt    time.Time       `json:"created_at"`
}
