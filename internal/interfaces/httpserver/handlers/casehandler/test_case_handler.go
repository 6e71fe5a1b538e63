package casehandler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"testhub/internal/domain/testcase"
	"testhub/internal/interfaces/httpserver/requests"
	"testhub/internal/utils/platformerrors"
)

// Handler manages test case HTTP endpoints.
type Handler struct {
	service *testcase.Service
	logger  zerolog.Logger
}

// NewHandler constructs a new test case handler.
func NewHandler(service *testcase.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With().Str("component", "test-case-handler").Logger(),
	}
}

type createRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	Prerequisites  string `json:"prerequisites"`
	Steps          string `json:"steps" binding:"required"`
	ExpectedResult string `json:"expected_result" binding:"required"`
	TestType       string `json:"test_type"`
	Priority       string `json:"priority"`
	CreatedBy      string `json:"created_by"`
}

type updateRequest struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	Prerequisites  *string `json:"prerequisites"`
	Steps          *string `json:"steps"`
	ExpectedResult *string `json:"expected_result"`
	TestType       *string `json:"test_type"`
	Priority       *string `json:"priority"`
}

type caseResponse struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Prerequisites  string    `json:"prerequisites,omitempty"`
	Steps          string    `json:"steps"`
	ExpectedResult string    `json:"expected_result"`
	TestType       string    `json:"test_type"`
	Priority       string    `json:"priority"`
	CreatedBy      string    `json:"created_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type listResponse struct {
	Items    []caseResponse `json:"items"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Pages    int            `json:"pages"`
}

func toResponse(tc *testcase.TestCase) caseResponse {
	return caseResponse{
		ID:             tc.ID,
		Title:          tc.Title,
		Description:    tc.Description,
		Prerequisites:  tc.Prerequisites,
		Steps:          tc.Steps,
		ExpectedResult: tc.ExpectedResult,
		TestType:       string(tc.TestType),
		Priority:       string(tc.Priority),
		CreatedBy:      tc.CreatedBy,
		CreatedAt:      tc.CreatedAt,
		UpdatedAt:      tc.UpdatedAt,
	}
}

// Create registers a new test case.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		platformerrors.WriteValidationError(c, "invalid request payload: "+err.Error())
		return
	}

	tc, err := h.service.Create(c.Request.Context(), testcase.CreateParams{
		Title:          req.Title,
		Description:    req.Description,
		Prerequisites:  req.Prerequisites,
		Steps:          req.Steps,
		ExpectedResult: req.ExpectedResult,
		TestType:       testcase.CaseType(req.TestType),
		Priority:       testcase.Priority(req.Priority),
		CreatedBy:      req.CreatedBy,
	})
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, toResponse(tc))
}

// Get returns a single case by id.
func (h *Handler) Get(c *gin.Context) {
	id, ok := requests.ParseID(c)
	if !ok {
		return
	}
	tc, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, toResponse(tc))
}

// List returns cases with paging and optional title/type/priority filters.
func (h *Handler) List(c *gin.Context) {
	pagination := requests.Pagination(c)

	filter := testcase.Filter{Title: c.Query("title")}
	if raw, present := c.GetQuery("test_type"); present {
		t := testcase.CaseType(raw)
		filter.TestType = &t
	}
	if raw, present := c.GetQuery("priority"); present {
		p := testcase.Priority(raw)
		filter.Priority = &p
	}

	cases, total, err := h.service.List(c.Request.Context(), filter, pagination)
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}

	items := make([]caseResponse, 0, len(cases))
	for i := range cases {
		items = append(items, toResponse(&cases[i]))
	}
	c.JSON(http.StatusOK, listResponse{
		Items:    items,
		Total:    total,
		Page:     pagination.Page(),
		PageSize: pagination.Limit,
		Pages:    pagination.Pages(total),
	})
}

// Update applies a partial update to a case.
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

	params := testcase.UpdateParams{
		Title:          req.Title,
		Description:    req.Description,
		Prerequisites:  req.Prerequisites,
		Steps:          req.Steps,
		ExpectedResult: req.ExpectedResult,
	}
	if req.TestType != nil {
		t := testcase.CaseType(*req.TestType)
		params.TestType = &t
	}
	if req.Priority != nil {
		p := testcase.Priority(*req.Priority)
		params.Priority = &p
	}

	tc, err := h.service.Update(c.Request.Context(), id, params)
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, toResponse(tc))
}

// Delete removes a case and its dependent executions.
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
