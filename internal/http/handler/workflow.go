package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ideaforge.app/evaluator/common/logger"
	"ideaforge.app/evaluator/internal/model"
	"ideaforge.app/evaluator/internal/service"
)

// Action is the closed set of workflow operations the dispatcher accepts.
type Action string

const (
	ActionSubmitEvaluation      Action = "submit_evaluation"
	ActionAssignEvaluator       Action = "assign_evaluator"
	ActionGetEvaluationStatus   Action = "get_evaluation_status"
	ActionFinalizeEvaluation    Action = "finalize_evaluation"
	ActionBulkAssignEvaluations Action = "bulk_assign_evaluations"
	ActionGenerateReport        Action = "generate_evaluation_report"
	ActionAIAssistedEvaluation  Action = "ai_assisted_evaluation"
)

type workflowRequest struct {
	Action      Action          `json:"action" binding:"required"`
	IdeaID      int64           `json:"idea_id"`
	EvaluatorID int64           `json:"evaluator_id"`
	Data        json.RawMessage `json:"data"`
}

type WorkflowHandler struct {
	evaluations   service.EvaluationService
	assignments   service.AssignmentService
	aiEvaluations service.AIEvaluationService
	finalizations service.FinalizationService
	reports       service.ReportService

	dispatch map[Action]func(*gin.Context, workflowRequest)
}

func NewWorkflowHandler(
	evaluations service.EvaluationService,
	assignments service.AssignmentService,
	aiEvaluations service.AIEvaluationService,
	finalizations service.FinalizationService,
	reports service.ReportService,
) *WorkflowHandler {
	h := &WorkflowHandler{
		evaluations:   evaluations,
		assignments:   assignments,
		aiEvaluations: aiEvaluations,
		finalizations: finalizations,
		reports:       reports,
	}
	// One entry per Action constant. Unknown actions are rejected in Handle.
	h.dispatch = map[Action]func(*gin.Context, workflowRequest){
		ActionSubmitEvaluation:      h.submitEvaluation,
		ActionAssignEvaluator:       h.assignEvaluator,
		ActionGetEvaluationStatus:   h.getStatus,
		ActionFinalizeEvaluation:    h.finalize,
		ActionBulkAssignEvaluations: h.bulkAssign,
		ActionGenerateReport:        h.generateReport,
		ActionAIAssistedEvaluation:  h.aiEvaluate,
	}
	return h
}

// Handle is the single workflow endpoint: it validates the envelope and
// routes to the per-action handler.
func (h *WorkflowHandler) Handle(c *gin.Context) {
	var req workflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, service.ValidationError("invalid request: action is required"))
		return
	}

	fn, ok := h.dispatch[req.Action]
	if !ok {
		respondError(c, service.ValidationError("unknown action %q", req.Action))
		return
	}

	fields := logger.LogFields{Action: logger.Ptr(string(req.Action))}
	if req.IdeaID > 0 {
		fields.IdeaID = logger.Ptr(req.IdeaID)
	}
	if req.EvaluatorID > 0 {
		fields.EvaluatorID = logger.Ptr(req.EvaluatorID)
	}
	c.Request = c.Request.WithContext(logger.WithLogFields(c.Request.Context(), fields))

	fn(c, req)
}

type submitEvaluationData struct {
	TechnicalFeasibility *int    `json:"technical_feasibility"`
	FinancialViability   *int    `json:"financial_viability"`
	MarketPotential      *int    `json:"market_potential"`
	StrategicAlignment   *int    `json:"strategic_alignment"`
	InnovationLevel      *int    `json:"innovation_level"`
	Comments             *string `json:"comments"`
	Recommendations      *string `json:"recommendations"`
}

func (h *WorkflowHandler) submitEvaluation(c *gin.Context, req workflowRequest) {
	ctx := c.Request.Context()

	var data submitEvaluationData
	if err := bindData(req.Data, &data); err != nil {
		respondError(c, err)
		return
	}

	result, err := h.evaluations.Submit(ctx, req.IdeaID, req.EvaluatorID, service.SubmissionInput{
		Scores: model.CriterionScores{
			TechnicalFeasibility: data.TechnicalFeasibility,
			FinancialViability:   data.FinancialViability,
			MarketPotential:      data.MarketPotential,
			StrategicAlignment:   data.StrategicAlignment,
			InnovationLevel:      data.InnovationLevel,
		},
		Comments:        data.Comments,
		Recommendations: data.Recommendations,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

type assignEvaluatorData struct {
	Priority   string   `json:"priority"`
	DueDate    *string  `json:"due_date"`
	Criteria   []string `json:"evaluation_criteria"`
	AssignedBy *int64   `json:"assigned_by"`
}

func (h *WorkflowHandler) assignEvaluator(c *gin.Context, req workflowRequest) {
	ctx := c.Request.Context()

	var data assignEvaluatorData
	if err := bindData(req.Data, &data); err != nil {
		respondError(c, err)
		return
	}

	opts, err := toAssignmentOptions(data)
	if err != nil {
		respondError(c, err)
		return
	}

	assignment, err := h.assignments.Assign(ctx, req.IdeaID, req.EvaluatorID, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, assignment)
}

type bulkAssignData struct {
	IdeaIDs      []int64  `json:"idea_ids"`
	EvaluatorIDs []int64  `json:"evaluator_ids"`
	Priority     string   `json:"priority"`
	DueDate      *string  `json:"due_date"`
	Criteria     []string `json:"evaluation_criteria"`
	AssignedBy   *int64   `json:"assigned_by"`
}

func (h *WorkflowHandler) bulkAssign(c *gin.Context, req workflowRequest) {
	ctx := c.Request.Context()

	var data bulkAssignData
	if err := bindData(req.Data, &data); err != nil {
		respondError(c, err)
		return
	}

	opts, err := toAssignmentOptions(assignEvaluatorData{
		Priority:   data.Priority,
		DueDate:    data.DueDate,
		Criteria:   data.Criteria,
		AssignedBy: data.AssignedBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.assignments.BulkAssign(ctx, data.IdeaIDs, data.EvaluatorIDs, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

func (h *WorkflowHandler) getStatus(c *gin.Context, req workflowRequest) {
	status, err := h.evaluations.Status(c.Request.Context(), req.IdeaID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, status)
}

type finalizeData struct {
	Threshold   *int   `json:"threshold"`
	GeneratedBy string `json:"generated_by"`
}

func (h *WorkflowHandler) finalize(c *gin.Context, req workflowRequest) {
	ctx := c.Request.Context()

	var data finalizeData
	if err := bindData(req.Data, &data); err != nil {
		respondError(c, err)
		return
	}

	generatedBy := data.GeneratedBy
	if generatedBy == "" {
		generatedBy = "system"
	}

	result, err := h.finalizations.Finalize(ctx, req.IdeaID, service.FinalizeOptions{
		Threshold:   data.Threshold,
		GeneratedBy: generatedBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

func (h *WorkflowHandler) generateReport(c *gin.Context, req workflowRequest) {
	report, err := h.reports.Generate(c.Request.Context(), req.IdeaID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, report)
}

func (h *WorkflowHandler) aiEvaluate(c *gin.Context, req workflowRequest) {
	eval, err := h.aiEvaluations.Evaluate(c.Request.Context(), req.IdeaID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, eval)
}

func toAssignmentOptions(data assignEvaluatorData) (service.AssignmentOptions, error) {
	opts := service.AssignmentOptions{
		Priority:   model.AssignmentPriority(data.Priority),
		Criteria:   data.Criteria,
		AssignedBy: data.AssignedBy,
	}
	if data.DueDate != nil && *data.DueDate != "" {
		due, err := time.Parse(time.RFC3339, *data.DueDate)
		if err != nil {
			return opts, service.ValidationError("due_date must be RFC 3339, got %q", *data.DueDate)
		}
		opts.DueDate = &due
	}
	return opts, nil
}

func bindData(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return service.ValidationError("invalid data payload: %v", err)
	}
	return nil
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, err error) {
	kind := service.KindOf(err)
	status := statusFor(kind)

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "workflow action failed",
			"error", err,
			"code", kind,
		)
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   service.MessageOf(err),
		"code":    string(kind),
	})
}

func statusFor(kind service.ErrorKind) int {
	switch kind {
	case service.ErrKindValidation:
		return http.StatusBadRequest
	case service.ErrKindNotFound:
		return http.StatusNotFound
	case service.ErrKindConfiguration:
		return http.StatusServiceUnavailable
	case service.ErrKindExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
