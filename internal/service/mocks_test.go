package service_test

import (
	"context"

	"ideaforge.app/evaluator/internal/model"
	"ideaforge.app/evaluator/internal/service"
	"ideaforge.app/evaluator/internal/store"
)

type mockIdeaStore struct {
	getByIDFn             func(ctx context.Context, id int64) (*model.Idea, error)
	setEvaluationResultFn func(ctx context.Context, id int64, score int, decision model.Decision) error
	markInProgressFn      func(ctx context.Context, id int64) error
	setResultCalls        int
}

func (m *mockIdeaStore) GetByID(ctx context.Context, id int64) (*model.Idea, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &model.Idea{ID: id, Title: "Test Idea"}, nil
}

func (m *mockIdeaStore) SetEvaluationResult(ctx context.Context, id int64, score int, decision model.Decision) error {
	m.setResultCalls++
	if m.setEvaluationResultFn != nil {
		return m.setEvaluationResultFn(ctx, id, score, decision)
	}
	return nil
}

func (m *mockIdeaStore) MarkInProgress(ctx context.Context, id int64) error {
	if m.markInProgressFn != nil {
		return m.markInProgressFn(ctx, id)
	}
	return nil
}

type mockEvaluationStore struct {
	upsertFn     func(ctx context.Context, params store.EvaluationUpsert) (*model.Evaluation, bool, error)
	listByIdeaFn func(ctx context.Context, ideaID int64) ([]model.Evaluation, error)
	upsertCalls  int
}

func (m *mockEvaluationStore) Upsert(ctx context.Context, params store.EvaluationUpsert) (*model.Evaluation, bool, error) {
	m.upsertCalls++
	if m.upsertFn != nil {
		return m.upsertFn(ctx, params)
	}
	return &model.Evaluation{ID: 1, IdeaID: params.IdeaID}, true, nil
}

func (m *mockEvaluationStore) ListByIdea(ctx context.Context, ideaID int64) ([]model.Evaluation, error) {
	if m.listByIdeaFn != nil {
		return m.listByIdeaFn(ctx, ideaID)
	}
	return nil, nil
}

type mockAssignmentStore struct {
	createFn     func(ctx context.Context, assignment *model.Assignment) error
	listByIdeaFn func(ctx context.Context, ideaID int64) ([]model.Assignment, error)
	createCalls  int
}

func (m *mockAssignmentStore) Create(ctx context.Context, assignment *model.Assignment) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, assignment)
	}
	return nil
}

func (m *mockAssignmentStore) ListByIdea(ctx context.Context, ideaID int64) ([]model.Assignment, error) {
	if m.listByIdeaFn != nil {
		return m.listByIdeaFn(ctx, ideaID)
	}
	return nil, nil
}

type mockSummaryStore struct {
	createFn     func(ctx context.Context, summary *model.Summary) error
	replaceFn    func(ctx context.Context, summary *model.Summary) error
	getByIdeaFn  func(ctx context.Context, ideaID int64) (*model.Summary, error)
	createCalls  int
	replaceCalls int
}

func (m *mockSummaryStore) Create(ctx context.Context, summary *model.Summary) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, summary)
	}
	return nil
}

func (m *mockSummaryStore) Replace(ctx context.Context, summary *model.Summary) error {
	m.replaceCalls++
	if m.replaceFn != nil {
		return m.replaceFn(ctx, summary)
	}
	return nil
}

func (m *mockSummaryStore) GetByIdea(ctx context.Context, ideaID int64) (*model.Summary, error) {
	if m.getByIdeaFn != nil {
		return m.getByIdeaFn(ctx, ideaID)
	}
	return nil, store.ErrNotFound
}

// mockTxStores hands the same mock stores to transactional code that the
// rest of the test wires directly, so call counters line up.
type mockTxStores struct {
	summaries *mockSummaryStore
	ideas     *mockIdeaStore
}

func (m mockTxStores) Summaries() store.SummaryStore { return m.summaries }
func (m mockTxStores) Ideas() store.IdeaStore        { return m.ideas }

type mockTxRunner struct {
	stores mockTxStores
	calls  int
}

func (m *mockTxRunner) WithTx(_ context.Context, fn func(stores service.StoreProvider) error) error {
	m.calls++
	return fn(m.stores)
}

type mockEvaluatorStore struct {
	getByIDFn   func(ctx context.Context, id int64) (*model.EvaluatorProfile, error)
	listByIDsFn func(ctx context.Context, ids []int64) ([]model.EvaluatorProfile, error)
}

func (m *mockEvaluatorStore) GetByID(ctx context.Context, id int64) (*model.EvaluatorProfile, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &model.EvaluatorProfile{ID: id, Name: "Test Evaluator"}, nil
}

func (m *mockEvaluatorStore) ListByIDs(ctx context.Context, ids []int64) ([]model.EvaluatorProfile, error) {
	if m.listByIDsFn != nil {
		return m.listByIDsFn(ctx, ids)
	}
	return nil, nil
}

type mockLLMClient struct {
	completeFn func(ctx context.Context, system, user string) (string, error)
}

func (m *mockLLMClient) Complete(ctx context.Context, system, user string) (string, error) {
	if m.completeFn != nil {
		return m.completeFn(ctx, system, user)
	}
	return "", nil
}

func (m *mockLLMClient) Model() string {
	return "test-model"
}

type recordedEvent struct {
	ideaID int64
	event  string
}

type mockNotifier struct {
	events []recordedEvent
}

func (m *mockNotifier) Notify(_ context.Context, ideaID int64, event string, _ any) {
	m.events = append(m.events, recordedEvent{ideaID: ideaID, event: event})
}

type mockAnalytics struct {
	events []recordedEvent
}

func (m *mockAnalytics) Track(_ context.Context, ideaID int64, event string, _ any) {
	m.events = append(m.events, recordedEvent{ideaID: ideaID, event: event})
}

type mockCompletionChecker struct {
	calls []int64
}

func (m *mockCompletionChecker) EvaluationSubmitted(_ context.Context, ideaID int64) {
	m.calls = append(m.calls, ideaID)
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}
