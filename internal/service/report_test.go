package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ideaforge.app/evaluator/internal/model"
	"ideaforge.app/evaluator/internal/service"
	"ideaforge.app/evaluator/internal/store"
)

var _ = Describe("ReportService", func() {
	var (
		svc         service.ReportService
		ideas       *mockIdeaStore
		evaluations *mockEvaluationStore
		evaluators  *mockEvaluatorStore
		ctx         context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		ideas = &mockIdeaStore{}
		evaluations = &mockEvaluationStore{}
		evaluators = &mockEvaluatorStore{}

		svc = service.NewReportService(ideas, evaluations, evaluators)
	})

	It("generates a zero-score report when no evaluations exist", func() {
		report, err := svc.Generate(ctx, 10)

		Expect(err).NotTo(HaveOccurred())
		Expect(report.Scores.EvaluationCount).To(BeZero())
		Expect(report.Scores.AverageOverallScore).To(BeZero())
		Expect(report.Evaluations).To(BeEmpty())
		Expect(report.Recommendations).To(BeEmpty())
		// A zero average lands in the lowest next-steps band.
		Expect(report.NextSteps).To(ContainElement(ContainSubstring("Rework")))
	})

	It("dedupes newline-split recommendations keeping first-seen order", func() {
		aliceID, bobID := int64(100), int64(200)
		evaluations.listByIdeaFn = func(_ context.Context, _ int64) ([]model.Evaluation, error) {
			return []model.Evaluation{
				{ID: 1, EvaluatorID: &aliceID, OverallScore: 80, Recommendations: "Add pricing detail\nValidate demand"},
				{ID: 2, EvaluatorID: &bobID, OverallScore: 60, Recommendations: "Validate demand\nHire a PM"},
			}, nil
		}

		report, err := svc.Generate(ctx, 10)

		Expect(err).NotTo(HaveOccurred())
		Expect(report.Recommendations).To(Equal([]string{
			"Add pricing detail",
			"Validate demand",
			"Hire a PM",
		}))
	})

	It("derives next steps from the 70/50 banding, not the decision threshold", func() {
		evaluatorID := int64(100)
		evaluations.listByIdeaFn = func(_ context.Context, _ int64) ([]model.Evaluation, error) {
			return []model.Evaluation{
				{ID: 1, EvaluatorID: &evaluatorID, OverallScore: 65},
			}, nil
		}

		report, err := svc.Generate(ctx, 10)

		Expect(err).NotTo(HaveOccurred())
		Expect(report.Scores.AverageOverallScore).To(Equal(65))
		// 65 lands in the revise band even though the decision engine would
		// classify it as conditional against the default threshold.
		Expect(report.NextSteps).To(ContainElement(ContainSubstring("resubmit")))
	})

	It("resolves evaluator names and labels AI evaluations", func() {
		humanID := int64(100)
		evaluations.listByIdeaFn = func(_ context.Context, _ int64) ([]model.Evaluation, error) {
			return []model.Evaluation{
				{ID: 1, EvaluatorID: &humanID, EvaluatorType: model.EvaluatorTypeHuman, OverallScore: 80},
				{ID: 2, EvaluatorType: model.EvaluatorTypeAI, OverallScore: 70},
			}, nil
		}
		evaluators.listByIDsFn = func(_ context.Context, ids []int64) ([]model.EvaluatorProfile, error) {
			Expect(ids).To(Equal([]int64{100}))
			return []model.EvaluatorProfile{{ID: 100, Name: "Dana Reyes"}}, nil
		}

		report, err := svc.Generate(ctx, 10)

		Expect(err).NotTo(HaveOccurred())
		Expect(report.Evaluations).To(HaveLen(2))
		Expect(report.Evaluations[0].EvaluatorName).To(Equal("Dana Reyes"))
		Expect(report.Evaluations[1].EvaluatorName).To(Equal("AI Assistant"))
	})

	It("returns not_found for an unknown idea", func() {
		ideas.getByIDFn = func(_ context.Context, _ int64) (*model.Idea, error) {
			return nil, store.ErrNotFound
		}

		report, err := svc.Generate(ctx, 999)

		Expect(report).To(BeNil())
		Expect(service.KindOf(err)).To(Equal(service.ErrKindNotFound))
	})
})
