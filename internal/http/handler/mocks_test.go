package handler_test

import (
	"context"

	"ideaforge.app/evaluator/internal/model"
	"ideaforge.app/evaluator/internal/service"
)

type mockEvaluationService struct {
	submitFn func(ctx context.Context, ideaID, evaluatorID int64, input service.SubmissionInput) (*service.SubmissionResult, error)
	statusFn func(ctx context.Context, ideaID int64) (*service.StatusReport, error)
}

func (m *mockEvaluationService) Submit(ctx context.Context, ideaID, evaluatorID int64, input service.SubmissionInput) (*service.SubmissionResult, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, ideaID, evaluatorID, input)
	}
	return &service.SubmissionResult{Action: service.ActionCreated}, nil
}

func (m *mockEvaluationService) Status(ctx context.Context, ideaID int64) (*service.StatusReport, error) {
	if m.statusFn != nil {
		return m.statusFn(ctx, ideaID)
	}
	return &service.StatusReport{IdeaID: ideaID}, nil
}

type mockAssignmentService struct {
	assignFn     func(ctx context.Context, ideaID, evaluatorID int64, opts service.AssignmentOptions) (*model.Assignment, error)
	bulkAssignFn func(ctx context.Context, ideaIDs, evaluatorIDs []int64, opts service.AssignmentOptions) (*service.BulkAssignResult, error)
}

func (m *mockAssignmentService) Assign(ctx context.Context, ideaID, evaluatorID int64, opts service.AssignmentOptions) (*model.Assignment, error) {
	if m.assignFn != nil {
		return m.assignFn(ctx, ideaID, evaluatorID, opts)
	}
	return &model.Assignment{IdeaID: ideaID, EvaluatorID: evaluatorID}, nil
}

func (m *mockAssignmentService) BulkAssign(ctx context.Context, ideaIDs, evaluatorIDs []int64, opts service.AssignmentOptions) (*service.BulkAssignResult, error) {
	if m.bulkAssignFn != nil {
		return m.bulkAssignFn(ctx, ideaIDs, evaluatorIDs, opts)
	}
	return &service.BulkAssignResult{}, nil
}

type mockAIEvaluationService struct {
	evaluateFn func(ctx context.Context, ideaID int64) (*model.Evaluation, error)
}

func (m *mockAIEvaluationService) Evaluate(ctx context.Context, ideaID int64) (*model.Evaluation, error) {
	if m.evaluateFn != nil {
		return m.evaluateFn(ctx, ideaID)
	}
	return &model.Evaluation{IdeaID: ideaID}, nil
}

type mockFinalizationService struct {
	finalizeFn func(ctx context.Context, ideaID int64, opts service.FinalizeOptions) (*service.FinalizeResult, error)
}

func (m *mockFinalizationService) Finalize(ctx context.Context, ideaID int64, opts service.FinalizeOptions) (*service.FinalizeResult, error) {
	if m.finalizeFn != nil {
		return m.finalizeFn(ctx, ideaID, opts)
	}
	return &service.FinalizeResult{}, nil
}

type mockReportService struct {
	generateFn func(ctx context.Context, ideaID int64) (*service.Report, error)
}

func (m *mockReportService) Generate(ctx context.Context, ideaID int64) (*service.Report, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, ideaID)
	}
	return &service.Report{IdeaID: ideaID}, nil
}
