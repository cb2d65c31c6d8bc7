package service

import (
	"context"
	"errors"
	"log/slog"

	"ideaforge.app/evaluator/common/id"
	"ideaforge.app/evaluator/core/config"
	"ideaforge.app/evaluator/internal/model"
	"ideaforge.app/evaluator/internal/scoring"
	"ideaforge.app/evaluator/internal/store"
)

// FinalizeOptions tune a single finalization call. A nil Threshold uses the
// configured default; GeneratedBy is recorded on the summary for audit.
type FinalizeOptions struct {
	Threshold   *int
	GeneratedBy string
}

type FinalizeResult struct {
	Summary  *model.Summary        `json:"summary"`
	Decision model.Decision        `json:"decision"`
	Scores   model.AggregateScores `json:"scores"`
}

type FinalizationService interface {
	Finalize(ctx context.Context, ideaID int64, opts FinalizeOptions) (*FinalizeResult, error)
}

type finalizationService struct {
	ideas       store.IdeaStore
	evaluations store.EvaluationStore
	tx          TxRunner
	notifier    Notifier
	analytics   Analytics
	cfg         config.EvaluationConfig
}

func NewFinalizationService(
	ideas store.IdeaStore,
	evaluations store.EvaluationStore,
	tx TxRunner,
	notifier Notifier,
	analytics Analytics,
	cfg config.EvaluationConfig,
) FinalizationService {
	return &finalizationService{
		ideas:       ideas,
		evaluations: evaluations,
		tx:          tx,
		notifier:    notifier,
		analytics:   analytics,
		cfg:         cfg,
	}
}

func (s *finalizationService) Finalize(ctx context.Context, ideaID int64, opts FinalizeOptions) (*FinalizeResult, error) {
	if ideaID <= 0 {
		return nil, ValidationError("idea_id is required")
	}

	threshold := s.cfg.DefaultThreshold
	if opts.Threshold != nil {
		if *opts.Threshold < 0 || *opts.Threshold > 100 {
			return nil, ValidationError("threshold must be between 0 and 100, got %d", *opts.Threshold)
		}
		threshold = *opts.Threshold
	}

	if _, err := s.ideas.GetByID(ctx, ideaID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NotFoundError("idea %d not found", ideaID)
		}
		return nil, PersistenceError("loading idea", err)
	}

	evaluations, err := s.evaluations.ListByIdea(ctx, ideaID)
	if err != nil {
		return nil, PersistenceError("listing evaluations", err)
	}
	if len(evaluations) == 0 {
		return nil, ValidationError("cannot finalize idea %d without evaluations", ideaID)
	}

	scores := scoring.Aggregate(evaluations)
	decision := scoring.Decide(scores.AverageOverallScore, threshold)

	summary := &model.Summary{
		ID:           id.New(),
		IdeaID:       ideaID,
		Scores:       scores,
		Decision:     decision,
		ThresholdMet: scores.AverageOverallScore >= threshold,
		GeneratedBy:  opts.GeneratedBy,
	}

	// The already-finalized check, summary write, and idea update share one
	// transaction so a concurrent finalize cannot slip between them.
	err = s.tx.WithTx(ctx, func(stores StoreProvider) error {
		if s.cfg.FinalizeMode == config.FinalizeModeReject {
			if _, err := stores.Summaries().GetByIdea(ctx, ideaID); err == nil {
				return ValidationError("idea %d is already finalized", ideaID)
			} else if !errors.Is(err, store.ErrNotFound) {
				return PersistenceError("checking existing summary", err)
			}
		}

		if s.cfg.FinalizeMode == config.FinalizeModeReplace {
			if err := stores.Summaries().Replace(ctx, summary); err != nil {
				return PersistenceError("writing evaluation summary", err)
			}
		} else {
			if err := stores.Summaries().Create(ctx, summary); err != nil {
				return PersistenceError("writing evaluation summary", err)
			}
		}

		if err := stores.Ideas().SetEvaluationResult(ctx, ideaID, scores.AverageOverallScore, decision); err != nil {
			return PersistenceError("updating idea evaluation result", err)
		}
		return nil
	})
	if err != nil {
		var svcErr *Error
		if errors.As(err, &svcErr) {
			return nil, svcErr
		}
		return nil, PersistenceError("finalizing evaluation", err)
	}

	slog.InfoContext(ctx, "evaluation finalized",
		"idea_id", ideaID,
		"decision", decision,
		"average_score", scores.AverageOverallScore,
		"threshold", threshold,
		"evaluation_count", scores.EvaluationCount,
	)

	s.notifier.Notify(ctx, ideaID, "evaluation_finalized", summary)
	s.analytics.Track(ctx, ideaID, "evaluation_finalized", map[string]any{
		"decision":      decision,
		"average_score": scores.AverageOverallScore,
		"threshold":     threshold,
	})

	return &FinalizeResult{Summary: summary, Decision: decision, Scores: scores}, nil
}
