package service

import (
	"context"
	"log/slog"
)

// Notifier delivers workflow notifications (evaluator assigned, evaluation
// finalized, ...). Implementations must not block the workflow; failures are
// logged, never returned.
type Notifier interface {
	Notify(ctx context.Context, ideaID int64, event string, payload any)
}

// Analytics records workflow events for downstream consumers. Same contract
// as Notifier: fire and forget.
type Analytics interface {
	Track(ctx context.Context, ideaID int64, event string, payload any)
}

// CompletionChecker is invoked after each newly created evaluation so a
// future hook can react when all assigned evaluators have submitted. The
// default wiring is the explicit no-op below.
type CompletionChecker interface {
	EvaluationSubmitted(ctx context.Context, ideaID int64)
}

type logNotifier struct{}

// NewLogNotifier returns a Notifier that only logs. Used until a real
// notification channel is wired in.
func NewLogNotifier() Notifier {
	return logNotifier{}
}

func (logNotifier) Notify(ctx context.Context, ideaID int64, event string, payload any) {
	slog.InfoContext(ctx, "workflow notification",
		"idea_id", ideaID,
		"event", event,
	)
}

type nopAnalytics struct{}

// NewNopAnalytics returns an Analytics sink that drops everything. Used when
// no Redis stream is configured.
func NewNopAnalytics() Analytics {
	return nopAnalytics{}
}

func (nopAnalytics) Track(ctx context.Context, ideaID int64, event string, payload any) {}

type nopCompletionChecker struct{}

// NewNopCompletionChecker returns the default CompletionChecker, which does
// nothing.
func NewNopCompletionChecker() CompletionChecker {
	return nopCompletionChecker{}
}

func (nopCompletionChecker) EvaluationSubmitted(ctx context.Context, ideaID int64) {}
