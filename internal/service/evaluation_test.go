package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ideaforge.app/evaluator/internal/model"
	"ideaforge.app/evaluator/internal/service"
	"ideaforge.app/evaluator/internal/store"
)

var _ = Describe("EvaluationService", func() {
	var (
		svc         service.EvaluationService
		ideas       *mockIdeaStore
		evaluations *mockEvaluationStore
		assignments *mockAssignmentStore
		evaluators  *mockEvaluatorStore
		notifier    *mockNotifier
		analytics   *mockAnalytics
		completion  *mockCompletionChecker
		ctx         context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		ideas = &mockIdeaStore{}
		evaluations = &mockEvaluationStore{}
		assignments = &mockAssignmentStore{}
		evaluators = &mockEvaluatorStore{}
		notifier = &mockNotifier{}
		analytics = &mockAnalytics{}
		completion = &mockCompletionChecker{}

		svc = service.NewEvaluationService(ideas, evaluations, assignments, evaluators, notifier, analytics, completion)
	})

	Describe("Submit", func() {
		validInput := service.SubmissionInput{
			Scores: model.CriterionScores{
				TechnicalFeasibility: intPtr(8),
				FinancialViability:   intPtr(7),
			},
			Comments: strPtr("solid concept"),
		}

		Context("when the evaluation is new", func() {
			It("reports action created and fires the completion hook", func() {
				var captured store.EvaluationUpsert
				evaluations.upsertFn = func(_ context.Context, params store.EvaluationUpsert) (*model.Evaluation, bool, error) {
					captured = params
					return &model.Evaluation{ID: 42, IdeaID: params.IdeaID, OverallScore: 8}, true, nil
				}

				result, err := svc.Submit(ctx, 10, 20, validInput)

				Expect(err).NotTo(HaveOccurred())
				Expect(result.Action).To(Equal(service.ActionCreated))
				Expect(result.Evaluation.ID).To(Equal(int64(42)))

				Expect(captured.IdeaID).To(Equal(int64(10)))
				Expect(*captured.EvaluatorID).To(Equal(int64(20)))
				Expect(captured.EvaluatorType).To(Equal(model.EvaluatorTypeHuman))

				Expect(completion.calls).To(Equal([]int64{10}))
				Expect(notifier.events).To(HaveLen(1))
				Expect(notifier.events[0].event).To(Equal("evaluation_submitted"))
			})
		})

		Context("when the evaluator resubmits", func() {
			It("reports action updated and skips the completion hook", func() {
				evaluations.upsertFn = func(_ context.Context, params store.EvaluationUpsert) (*model.Evaluation, bool, error) {
					return &model.Evaluation{ID: 42, IdeaID: params.IdeaID}, false, nil
				}

				result, err := svc.Submit(ctx, 10, 20, validInput)

				Expect(err).NotTo(HaveOccurred())
				Expect(result.Action).To(Equal(service.ActionUpdated))
				Expect(completion.calls).To(BeEmpty())
				Expect(notifier.events[0].event).To(Equal("evaluation_updated"))
			})
		})

		Context("when a criterion score is out of range", func() {
			It("returns a validation error without touching the store", func() {
				result, err := svc.Submit(ctx, 10, 20, service.SubmissionInput{
					Scores: model.CriterionScores{TechnicalFeasibility: intPtr(11)},
				})

				Expect(result).To(BeNil())
				Expect(service.KindOf(err)).To(Equal(service.ErrKindValidation))
				Expect(evaluations.upsertCalls).To(BeZero())
			})
		})

		Context("when no criterion scores are provided", func() {
			It("returns a validation error", func() {
				result, err := svc.Submit(ctx, 10, 20, service.SubmissionInput{})

				Expect(result).To(BeNil())
				Expect(service.KindOf(err)).To(Equal(service.ErrKindValidation))
			})
		})

		Context("when the idea does not exist", func() {
			It("returns a not_found error", func() {
				ideas.getByIDFn = func(_ context.Context, _ int64) (*model.Idea, error) {
					return nil, store.ErrNotFound
				}

				result, err := svc.Submit(ctx, 10, 20, validInput)

				Expect(result).To(BeNil())
				Expect(service.KindOf(err)).To(Equal(service.ErrKindNotFound))
			})
		})

		Context("when the store fails", func() {
			It("returns a persistence error", func() {
				evaluations.upsertFn = func(_ context.Context, _ store.EvaluationUpsert) (*model.Evaluation, bool, error) {
					return nil, false, errors.New("connection reset")
				}

				result, err := svc.Submit(ctx, 10, 20, validInput)

				Expect(result).To(BeNil())
				Expect(service.KindOf(err)).To(Equal(service.ErrKindPersistence))
			})
		})
	})

	Describe("Status", func() {
		It("computes progress from the evaluation count over the assignment count", func() {
			assignments.listByIdeaFn = func(_ context.Context, _ int64) ([]model.Assignment, error) {
				return []model.Assignment{
					{ID: 1, EvaluatorID: 100},
					{ID: 2, EvaluatorID: 200},
					{ID: 3, EvaluatorID: 300},
				}, nil
			}
			evaluatorID := int64(100)
			evaluations.listByIdeaFn = func(_ context.Context, _ int64) ([]model.Evaluation, error) {
				return []model.Evaluation{
					{ID: 1, EvaluatorID: &evaluatorID, OverallScore: 80},
				}, nil
			}

			status, err := svc.Status(ctx, 10)

			Expect(err).NotTo(HaveOccurred())
			Expect(status.TotalAssigned).To(Equal(3))
			Expect(status.TotalSubmitted).To(Equal(1))
			Expect(status.ProgressPercent).To(Equal(33))
			Expect(status.Aggregate.AverageOverallScore).To(Equal(80))
		})

		It("reports zero progress with no assignments", func() {
			status, err := svc.Status(ctx, 10)

			Expect(err).NotTo(HaveOccurred())
			Expect(status.ProgressPercent).To(BeZero())
			Expect(status.Aggregate.EvaluationCount).To(BeZero())
		})

		It("counts AI evaluations toward progress", func() {
			assignments.listByIdeaFn = func(_ context.Context, _ int64) ([]model.Assignment, error) {
				return []model.Assignment{{ID: 1, EvaluatorID: 100}}, nil
			}
			evaluations.listByIdeaFn = func(_ context.Context, _ int64) ([]model.Evaluation, error) {
				return []model.Evaluation{
					{ID: 1, EvaluatorType: model.EvaluatorTypeAI, OverallScore: 70},
				}, nil
			}

			status, err := svc.Status(ctx, 10)

			Expect(err).NotTo(HaveOccurred())
			Expect(status.ProgressPercent).To(Equal(100))
			Expect(status.TotalSubmitted).To(Equal(1))
		})

		It("can exceed 100 percent when unassigned evaluators submit", func() {
			assignments.listByIdeaFn = func(_ context.Context, _ int64) ([]model.Assignment, error) {
				return []model.Assignment{{ID: 1, EvaluatorID: 100}}, nil
			}
			first, second := int64(100), int64(200)
			evaluations.listByIdeaFn = func(_ context.Context, _ int64) ([]model.Evaluation, error) {
				return []model.Evaluation{
					{ID: 1, EvaluatorID: &first, OverallScore: 80},
					{ID: 2, EvaluatorID: &second, OverallScore: 60},
				}, nil
			}

			status, err := svc.Status(ctx, 10)

			Expect(err).NotTo(HaveOccurred())
			Expect(status.ProgressPercent).To(Equal(200))
		})

		It("returns not_found for an unknown idea", func() {
			ideas.getByIDFn = func(_ context.Context, _ int64) (*model.Idea, error) {
				return nil, store.ErrNotFound
			}

			status, err := svc.Status(ctx, 999)

			Expect(status).To(BeNil())
			Expect(service.KindOf(err)).To(Equal(service.ErrKindNotFound))
		})
	})
})
