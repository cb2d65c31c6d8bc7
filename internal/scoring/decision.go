package scoring

import "ideaforge.app/evaluator/internal/model"

const (
	// DefaultThreshold is the approval cutoff used when no override is given.
	DefaultThreshold = 70

	// ConditionalBand is the fixed width of the conditional band below the
	// threshold. It is intentionally not configurable.
	ConditionalBand = 20
)

// Decide classifies an aggregated overall score against a threshold.
// Boundaries are inclusive: a score equal to the threshold is approved, and
// a score equal to threshold-ConditionalBand is conditional.
func Decide(avgScore, threshold int) model.Decision {
	switch {
	case avgScore >= threshold:
		return model.DecisionApproved
	case avgScore >= threshold-ConditionalBand:
		return model.DecisionConditional
	default:
		return model.DecisionRejected
	}
}

// Next-steps banding for reports. These cut points (70/50) are independent
// of the decision threshold and must not be unified with it.
const (
	implementationCutoff = 70
	revisionCutoff       = 50
)

var (
	implementationSteps = []string{
		"Move to implementation planning",
		"Assign a project sponsor and delivery team",
		"Define milestones and success metrics",
	}
	revisionSteps = []string{
		"Address evaluator recommendations",
		"Revise the proposal and resubmit for evaluation",
	}
	majorRevisionSteps = []string{
		"Rework the concept fundamentals before resubmission",
		"Schedule a coaching session with the innovation team",
	}
)

// NextSteps derives the report's next-steps band from the mean overall
// score: implementation track at >= 70, revise-and-resubmit at >= 50,
// major revision below that.
func NextSteps(avgScore int) []string {
	switch {
	case avgScore >= implementationCutoff:
		return implementationSteps
	case avgScore >= revisionCutoff:
		return revisionSteps
	default:
		return majorRevisionSteps
	}
}
