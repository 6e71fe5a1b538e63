package integrationhandler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"testhub/internal/domain/execution"
	"testhub/internal/utils/platformerrors"
)

// Handler accepts automation result uploads from external clients
// authenticated with an API key.
type Handler struct {
	service *execution.BatchService
	logger  zerolog.Logger
}

// NewHandler constructs a new integration handler.
func NewHandler(service *execution.BatchService, logger zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With().Str("component", "integration-handler").Logger(),
	}
}

type batchStep struct {
	StepNumber      int    `json:"step_number"`
	StepDescription string `json:"step_description"`
	Status          string `json:"status"`
	ScreenshotURL   string `json:"screenshot_url"`
	Notes           string `json:"notes"`
}

type batchEntry struct {
	TestCaseID uint        `json:"test_case_id"`
	Status     string      `json:"status"`
	Duration   *int        `json:"duration"`
	ExecutedBy string      `json:"executed_by"`
	Notes      string      `json:"notes"`
	Steps      []batchStep `json:"steps"`
}

type batchRequest struct {
	TestPlanID uint         `json:"test_plan_id" binding:"required"`
	Results    []batchEntry `json:"results"`
}

type singleRequest struct {
	TestPlanID uint   `json:"test_plan_id" binding:"required"`
	TestCaseID uint   `json:"test_case_id" binding:"required"`
	Status     string `json:"status" binding:"required"`
	ExecutedBy string `json:"executed_by"`
	Duration   *int   `json:"duration"`
	Notes      string `json:"notes"`
}

// UploadBatch accepts a batch of automation results and schedules them
// for background processing. The response acknowledges acceptance, not
// commitment; per-entry failures are logged server-side only.
func (h *Handler) UploadBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		platformerrors.WriteValidationError(c, "invalid request payload: "+err.Error())
		return
	}

	results := make([]execution.BatchEntry, 0, len(req.Results))
	for _, entry := range req.Results {
		steps := make([]execution.BatchStep, 0, len(entry.Steps))
		for _, step := range entry.Steps {
			steps = append(steps, execution.BatchStep{
				StepNumber:      step.StepNumber,
				StepDescription: step.StepDescription,
				Status:          execution.Status(step.Status),
				ScreenshotURL:   step.ScreenshotURL,
				Notes:           step.Notes,
			})
		}
		results = append(results, execution.BatchEntry{
			TestCaseID: entry.TestCaseID,
			Status:     execution.Status(entry.Status),
			Duration:   entry.Duration,
			ExecutedBy: entry.ExecutedBy,
			Notes:      entry.Notes,
			Steps:      steps,
		})
	}

	accepted, err := h.service.Submit(c.Request.Context(), execution.BatchRequest{
		TestPlanID: req.TestPlanID,
		Results:    results,
	})
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message":  "batch accepted for processing",
		"accepted": accepted,
	})
}

// UploadSingle records one automation result synchronously.
func (h *Handler) UploadSingle(c *gin.Context) {
	var req singleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		platformerrors.WriteValidationError(c, "invalid request payload: "+err.Error())
		return
	}

	exec, err := h.service.UploadSingle(c.Request.Context(), execution.SingleParams{
		TestPlanID: req.TestPlanID,
		TestCaseID: req.TestCaseID,
		Status:     execution.Status(req.Status),
		ExecutedBy: req.ExecutedBy,
		Duration:   req.Duration,
		Notes:      req.Notes,
	})
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":           exec.ID,
		"test_plan_id": exec.TestPlanID,
		"test_case_id": exec.TestCaseID,
		"status":       string(exec.Status),
		"executed_at":  executedAt(exec.ExecutedAt),
	})
}

func executedAt(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
