package executionhandler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"testhub/internal/domain/execution"
	"testhub/internal/interfaces/httpserver/requests"
	"testhub/internal/utils/platformerrors"
)

// Handler manages test execution HTTP endpoints, including step results.
type Handler struct {
	service *execution.Service
	logger  zerolog.Logger
}

// NewHandler constructs a new execution handler.
func NewHandler(service *execution.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With().Str("component", "test-execution-handler").Logger(),
	}
}

type createRequest struct {
	TestPlanID uint       `json:"test_plan_id" binding:"required"`
	TestCaseID uint       `json:"test_case_id" binding:"required"`
	Status     string     `json:"status"`
	ExecutedAt *time.Time `json:"executed_at"`
	ExecutedBy string     `json:"executed_by"`
	Duration   *int       `json:"duration"`
	Notes      string     `json:"notes"`
}

type updateRequest struct {
	Status     *string    `json:"status"`
	ExecutedAt *time.Time `json:"executed_at"`
	ExecutedBy *string    `json:"executed_by"`
	Duration   *int       `json:"duration"`
	Notes      *string    `json:"notes"`
}

type resultRequest struct {
	StepNumber      int    `json:"step_number" binding:"required"`
	StepDescription string `json:"step_description" binding:"required"`
	Status          string `json:"status" binding:"required"`
	ScreenshotURL   string `json:"screenshot_url"`
	Notes           string `json:"notes"`
}

type executionResponse struct {
	ID         uint       `json:"id"`
	TestPlanID uint       `json:"test_plan_id"`
	TestCaseID uint       `json:"test_case_id"`
	Status     string     `json:"status"`
	ExecutedAt *time.Time `json:"executed_at,omitempty"`
	ExecutedBy string     `json:"executed_by,omitempty"`
	Duration   *int       `json:"duration,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type resultResponse struct {
	ID              uint   `json:"id"`
	ExecutionID     uint   `json:"execution_id"`
	StepNumber      int    `json:"step_number"`
	StepDescription string `json:"step_description"`
	Status          string `json:"status"`
	ScreenshotURL   string `json:"screenshot_url,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

type listResponse struct {
	Items    []executionResponse `json:"items"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	Pages    int                 `json:"pages"`
}

func toResponse(e *execution.Execution) executionResponse {
	return executionResponse{
		ID:         e.ID,
		TestPlanID: e.TestPlanID,
		TestCaseID: e.TestCaseID,
		Status:     string(e.Status),
		ExecutedAt: e.ExecutedAt,
		ExecutedBy: e.ExecutedBy,
		Duration:   e.Duration,
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func toResultResponse(r *execution.StepResult) resultResponse {
	return resultResponse{
		ID:              r.ID,
		ExecutionID:     r.ExecutionID,
		StepNumber:      r.StepNumber,
		StepDescription: r.StepDescription,
		Status:          string(r.Status),
		ScreenshotURL:   r.ScreenshotURL,
		Notes:           r.Notes,
	}
}

// Create records a new execution of a case within a plan.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		platformerrors.WriteValidationError(c, "invalid request payload: "+err.Error())
		return
	}

	exec, err := h.service.Create(c.Request.Context(), execution.CreateParams{
		TestPlanID: req.TestPlanID,
		TestCaseID: req.TestCaseID,
		Status:     execution.Status(req.Status),
		ExecutedAt: req.ExecutedAt,
		ExecutedBy: req.ExecutedBy,
		Duration:   req.Duration,
		Notes:      req.Notes,
	})
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, toResponse(exec))
}

// Get returns a single execution by id.
func (h *Handler) Get(c *gin.Context) {
	id, ok := requests.ParseID(c)
	if !ok {
		return
	}
	exec, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, toResponse(exec))
}

// List returns executions with paging and plan/case/status filters.
func (h *Handler) List(c *gin.Context) {
	pagination := requests.Pagination(c)

	var filter execution.Filter
	if raw := c.Query("test_plan_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			platformerrors.WriteValidationError(c, "test_plan_id must be a positive integer")
			return
		}
		filter.TestPlanID = uint(id)
	}
	if raw := c.Query("test_case_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			platformerrors.WriteValidationError(c, "test_case_id must be a positive integer")
			return
		}
		filter.TestCaseID = uint(id)
	}
	if raw, present := c.GetQuery("status"); present {
		status := execution.Status(raw)
		filter.Status = &status
	}

	executions, total, err := h.service.List(c.Request.Context(), filter, pagination)
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}

	items := make([]executionResponse, 0, len(executions))
	for i := range executions {
		items = append(items, toResponse(&executions[i]))
	}
	c.JSON(http.StatusOK, listResponse{
		Items:    items,
		Total:    total,
		Page:     pagination.Page(),
		PageSize: pagination.Limit,
		Pages:    pagination.Pages(total),
	})
}

// Update applies a partial update to an execution.
func (h *Handler) Update(c *gin.Context) {
	id, ok := requests.ParseID(c)
	if !ok {
		return
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		platformerrors.WriteValidationError(c, "invalid request payload: "+err.Error())
		return
	}

	params := execution.UpdateParams{
		ExecutedAt: req.ExecutedAt,
		ExecutedBy: req.ExecutedBy,
		Duration:   req.Duration,
		Notes:      req.Notes,
	}
	if req.Status != nil {
		status := execution.Status(*req.Status)
		params.Status = &status
	}

	exec, err := h.service.Update(c.Request.Context(), id, params)
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, toResponse(exec))
}

// Delete removes an execution and its step results.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := requests.ParseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddResult appends a step result to an execution.
func (h *Handler) AddResult(c *gin.Context) {
	id, ok := requests.ParseID(c)
	if !ok {
		return
	}
	var req resultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		platformerrors.WriteValidationError(c, "invalid request payload: "+err.Error())
		return
	}

	result, err := h.service.AddResult(c.Request.Context(), id, execution.StepResult{
		StepNumber:      req.StepNumber,
		StepDescription: req.StepDescription,
		Status:          execution.Status(req.Status),
		ScreenshotURL:   req.ScreenshotURL,
		Notes:           req.Notes,
	})
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, toResultResponse(result))
}

// ListResults returns an execution's step results ordered by step number.
func (h *Handler) ListResults(c *gin.Context) {
	id, ok := requests.ParseID(c)
	if !ok {
		return
	}
	results, err := h.service.ListResults(c.Request.Context(), id)
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}

	items := make([]resultResponse, 0, len(results))
	for i := range results {
		items = append(items, toResultResponse(&results[i]))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
