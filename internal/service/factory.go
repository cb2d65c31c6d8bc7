package service

import (
	"ideaforge.app/evaluator/common/llm"
	"ideaforge.app/evaluator/core/config"
	"ideaforge.app/evaluator/internal/store"
)

// Services wires stores, ports, and config into the workflow services.
type Services struct {
	stores     *store.Stores
	tx         TxRunner
	scoringLLM llm.Client
	notifier   Notifier
	analytics  Analytics
	completion CompletionChecker
	evalCfg    config.EvaluationConfig
}

func NewServices(
	stores *store.Stores,
	tx TxRunner,
	scoringLLM llm.Client,
	notifier Notifier,
	analytics Analytics,
	completion CompletionChecker,
	evalCfg config.EvaluationConfig,
) *Services {
	if notifier == nil {
		notifier = NewLogNotifier()
	}
	if analytics == nil {
		analytics = NewNopAnalytics()
	}
	if completion == nil {
		completion = NewNopCompletionChecker()
	}
	return &Services{
		stores:     stores,
		tx:         tx,
		scoringLLM: scoringLLM,
		notifier:   notifier,
		analytics:  analytics,
		completion: completion,
		evalCfg:    evalCfg,
	}
}

func (s *Services) Evaluations() EvaluationService {
	return NewEvaluationService(
		s.stores.Ideas(),
		s.stores.Evaluations(),
		s.stores.Assignments(),
		s.stores.Evaluators(),
		s.notifier,
		s.analytics,
		s.completion,
	)
}

func (s *Services) Assignments() AssignmentService {
	return NewAssignmentService(
		s.stores.Ideas(),
		s.stores.Evaluators(),
		s.stores.Assignments(),
		s.notifier,
		s.analytics,
	)
}

func (s *Services) AIEvaluations() AIEvaluationService {
	return NewAIEvaluationService(
		s.stores.Ideas(),
		s.stores.Evaluations(),
		s.scoringLLM,
		s.analytics,
	)
}

func (s *Services) Finalizations() FinalizationService {
	return NewFinalizationService(
		s.stores.Ideas(),
		s.stores.Evaluations(),
		s.tx,
		s.notifier,
		s.analytics,
		s.evalCfg,
	)
}

func (s *Services) Reports() ReportService {
	return NewReportService(
		s.stores.Ideas(),
		s.stores.Evaluations(),
		s.stores.Evaluators(),
	)
}
