package planhandler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"testhub/internal/domain/testplan"
	"testhub/internal/interfaces/httpserver/requests"
	"testhub/internal/utils/platformerrors"
)

// Handler manages test plan HTTP endpoints.
type Handler struct {
	service *testplan.Service
	logger  zerolog.Logger
}

// NewHandler constructs a new test plan handler.
func NewHandler(service *testplan.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With().Str("component", "test-plan-handler").Logger(),
	}
}

type createRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsActive    *bool      `json:"is_active"`
}

type updateRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsActive    *bool      `json:"is_active"`
}

type planResponse struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type listResponse struct {
	Items    []planResponse `json:"items"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Pages    int            `json:"pages"`
}

func toResponse(p *testplan.TestPlan) planResponse {
	return planResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// Create registers a new test plan.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		platformerrors.WriteValidationError(c, "invalid request payload: "+err.Error())
		return
	}

	plan, err := h.service.Create(c.Request.Context(), testplan.CreateParams{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsActive:    req.IsActive,
	})
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, toResponse(plan))
}

// Get returns a single plan by id.
func (h *Handler) Get(c *gin.Context) {
	id, ok := requests.ParseID(c)
	if !ok {
		return
	}
	plan, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, toResponse(plan))
}

// List returns plans with paging and the optional is_active filter.
func (h *Handler) List(c *gin.Context) {
	pagination := requests.Pagination(c)

	var filter testplan.Filter
	if raw, present := c.GetQuery("is_active"); present {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			platformerrors.WriteValidationError(c, "is_active must be a boolean")
			return
		}
		filter.IsActive = &active
	}

	plans, total, err := h.service.List(c.Request.Context(), filter, pagination)
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}

	items := make([]planResponse, 0, len(plans))
	for i := range plans {
		items = append(items, toResponse(&plans[i]))
	}
	c.JSON(http.StatusOK, listResponse{
		Items:    items,
		Total:    total,
		Page:     pagination.Page(),
		PageSize: pagination.Limit,
		Pages:    pagination.Pages(total),
	})
}

// Update applies a partial update to a plan.
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

	plan, err := h.service.Update(c.Request.Context(), id, testplan.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsActive:    req.IsActive,
	})
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, toResponse(plan))
}

// Delete removes a plan and its dependent executions.
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
