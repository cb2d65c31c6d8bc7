// Package scoring holds the pure evaluation arithmetic: per-record overall
// scores, per-idea aggregation, decision classification, and the next-steps
// banding used by reports. Nothing here touches the store.
package scoring

import (
	"math"

	"ideaforge.app/evaluator/internal/model"
)

// Overall returns the rounded mean of the present criterion scores, or 0
// when none are present. Rounding is half away from zero.
func Overall(scores model.CriterionScores) int {
	present := scores.Present()
	if len(present) == 0 {
		return 0
	}
	sum := 0
	for _, v := range present {
		sum += v
	}
	return roundDiv(sum, len(present))
}

// Aggregate combines all evaluations for one idea into per-criterion and
// overall averages. Absent criteria contribute 0 to their sum; the divisor
// is always the evaluation count, matching the absence of per-field count
// tracking upstream. An empty input yields all zeros.
func Aggregate(evals []model.Evaluation) model.AggregateScores {
	if len(evals) == 0 {
		return model.AggregateScores{}
	}

	var overall, technical, financial, market, strategic, innovation int
	for _, e := range evals {
		overall += e.OverallScore
		technical += deref(e.TechnicalFeasibility)
		financial += deref(e.FinancialViability)
		market += deref(e.MarketPotential)
		strategic += deref(e.StrategicAlignment)
		innovation += deref(e.InnovationLevel)
	}

	n := len(evals)
	return model.AggregateScores{
		AverageOverallScore:         roundDiv(overall, n),
		AverageTechnicalFeasibility: roundDiv(technical, n),
		AverageFinancialViability:   roundDiv(financial, n),
		AverageMarketPotential:      roundDiv(market, n),
		AverageStrategicAlignment:   roundDiv(strategic, n),
		AverageInnovationLevel:      roundDiv(innovation, n),
		EvaluationCount:             n,
	}
}

// roundDiv divides sum by n rounding half away from zero.
func roundDiv(sum, n int) int {
	return int(math.Round(float64(sum) / float64(n)))
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
