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

const validLLMResponse = `{
	"technical_feasibility": 8,
	"financial_viability": 7,
	"market_potential": 6,
	"strategic_alignment": 9,
	"innovation_level": 7,
	"overall_assessment": "A well-scoped idea with realistic economics.",
	"strengths": ["clear problem statement"],
	"improvements": ["needs a rollout plan"],
	"recommendations": ["Pilot with one region first", "Define success metrics"]
}`

var _ = Describe("AIEvaluationService", func() {
	var (
		ideas       *mockIdeaStore
		evaluations *mockEvaluationStore
		client      *mockLLMClient
		analytics   *mockAnalytics
		ctx         context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		ideas = &mockIdeaStore{}
		evaluations = &mockEvaluationStore{}
		client = &mockLLMClient{}
		analytics = &mockAnalytics{}
	})

	Context("when no LLM is configured", func() {
		It("fails fast with a configuration error", func() {
			svc := service.NewAIEvaluationService(ideas, evaluations, nil, analytics)

			eval, err := svc.Evaluate(ctx, 10)

			Expect(eval).To(BeNil())
			Expect(service.KindOf(err)).To(Equal(service.ErrKindConfiguration))
		})
	})

	Context("when the model returns a valid response", func() {
		It("persists an AI evaluation with nil evaluator id", func() {
			client.completeFn = func(_ context.Context, _, _ string) (string, error) {
				return validLLMResponse, nil
			}

			var captured store.EvaluationUpsert
			evaluations.upsertFn = func(_ context.Context, params store.EvaluationUpsert) (*model.Evaluation, bool, error) {
				captured = params
				return &model.Evaluation{ID: 7, IdeaID: params.IdeaID, OverallScore: 7}, true, nil
			}

			svc := service.NewAIEvaluationService(ideas, evaluations, client, analytics)
			eval, err := svc.Evaluate(ctx, 10)

			Expect(err).NotTo(HaveOccurred())
			Expect(eval.ID).To(Equal(int64(7)))

			Expect(captured.EvaluatorID).To(BeNil())
			Expect(captured.EvaluatorType).To(Equal(model.EvaluatorTypeAI))
			Expect(*captured.Scores.TechnicalFeasibility).To(Equal(8))
			Expect(*captured.Comments).To(ContainSubstring("well-scoped"))
			Expect(*captured.Recommendations).To(Equal("Pilot with one region first\nDefine success metrics"))
			Expect(captured.Metadata.AIGenerated).To(BeTrue())
			Expect(captured.Metadata.Strengths).To(HaveLen(1))

			Expect(analytics.events).To(HaveLen(1))
			Expect(analytics.events[0].event).To(Equal("ai_evaluation_generated"))
		})

		It("unwraps a code-fenced response", func() {
			client.completeFn = func(_ context.Context, _, _ string) (string, error) {
				return "```json\n" + validLLMResponse + "\n```", nil
			}

			svc := service.NewAIEvaluationService(ideas, evaluations, client, analytics)
			_, err := svc.Evaluate(ctx, 10)

			Expect(err).NotTo(HaveOccurred())
			Expect(evaluations.upsertCalls).To(Equal(1))
		})
	})

	Context("when the model returns malformed output", func() {
		It("rejects non-JSON output and persists nothing", func() {
			client.completeFn = func(_ context.Context, _, _ string) (string, error) {
				return "I think this idea deserves an 8 out of 10.", nil
			}

			svc := service.NewAIEvaluationService(ideas, evaluations, client, analytics)
			eval, err := svc.Evaluate(ctx, 10)

			Expect(eval).To(BeNil())
			Expect(service.KindOf(err)).To(Equal(service.ErrKindValidation))
			Expect(evaluations.upsertCalls).To(BeZero())
		})

		It("rejects out-of-range scores and persists nothing", func() {
			client.completeFn = func(_ context.Context, _, _ string) (string, error) {
				return `{"technical_feasibility": 12, "financial_viability": 7, "market_potential": 6, "strategic_alignment": 9, "innovation_level": 7}`, nil
			}

			svc := service.NewAIEvaluationService(ideas, evaluations, client, analytics)
			eval, err := svc.Evaluate(ctx, 10)

			Expect(eval).To(BeNil())
			Expect(service.KindOf(err)).To(Equal(service.ErrKindValidation))
			Expect(evaluations.upsertCalls).To(BeZero())
		})

		It("rejects missing scores and persists nothing", func() {
			client.completeFn = func(_ context.Context, _, _ string) (string, error) {
				return `{"technical_feasibility": 8}`, nil
			}

			svc := service.NewAIEvaluationService(ideas, evaluations, client, analytics)
			eval, err := svc.Evaluate(ctx, 10)

			Expect(eval).To(BeNil())
			Expect(service.KindOf(err)).To(Equal(service.ErrKindValidation))
			Expect(evaluations.upsertCalls).To(BeZero())
		})
	})

	Context("when the model call fails", func() {
		It("surfaces an external_service error", func() {
			client.completeFn = func(_ context.Context, _, _ string) (string, error) {
				return "", errors.New("completion failed after 3 attempts: rate limited")
			}

			svc := service.NewAIEvaluationService(ideas, evaluations, client, analytics)
			eval, err := svc.Evaluate(ctx, 10)

			Expect(eval).To(BeNil())
			Expect(service.KindOf(err)).To(Equal(service.ErrKindExternalService))
		})
	})

	Context("when the idea does not exist", func() {
		It("returns not_found without calling the model", func() {
			ideas.getByIDFn = func(_ context.Context, _ int64) (*model.Idea, error) {
				return nil, store.ErrNotFound
			}
			called := false
			client.completeFn = func(_ context.Context, _, _ string) (string, error) {
				called = true
				return validLLMResponse, nil
			}

			svc := service.NewAIEvaluationService(ideas, evaluations, client, analytics)
			eval, err := svc.Evaluate(ctx, 999)

			Expect(eval).To(BeNil())
			Expect(service.KindOf(err)).To(Equal(service.ErrKindNotFound))
			Expect(called).To(BeFalse())
		})
	})

	It("includes the idea content and response schema in the prompt", func() {
		ideas.getByIDFn = func(_ context.Context, ideaID int64) (*model.Idea, error) {
			return &model.Idea{
				ID:          ideaID,
				Title:       "Solar-powered kiosks",
				Description: "Off-grid service points",
			}, nil
		}

		var userPrompt string
		client.completeFn = func(_ context.Context, _, user string) (string, error) {
			userPrompt = user
			return validLLMResponse, nil
		}

		svc := service.NewAIEvaluationService(ideas, evaluations, client, analytics)
		_, err := svc.Evaluate(ctx, 10)

		Expect(err).NotTo(HaveOccurred())
		Expect(userPrompt).To(ContainSubstring("Solar-powered kiosks"))
		Expect(userPrompt).To(ContainSubstring("technical_feasibility"))
		Expect(userPrompt).To(ContainSubstring("overall_assessment"))
	})
})
