package jirahandler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"testhub/internal/domain/jiralink"
	"testhub/internal/interfaces/httpserver/requests"
	"testhub/internal/utils/platformerrors"
)

// Handler manages Jira integration HTTP endpoints.
type Handler struct {
	service *jiralink.Service
	logger  zerolog.Logger
}

// NewHandler constructs a new Jira integration handler.
func NewHandler(service *jiralink.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With().Str("component", "jira-handler").Logger(),
	}
}

type linkRequest struct {
	JiraProjectKey  string `json:"jira_project_key" binding:"required"`
	JiraIssueKey    string `json:"jira_issue_key" binding:"required"`
	TestCaseID      *uint  `json:"test_case_id"`
	TestExecutionID *uint  `json:"test_execution_id"`
}

type linkResponse struct {
	ID              uint      `json:"id"`
	JiraProjectKey  string    `json:"jira_project_key"`
	JiraIssueKey    string    `json:"jira_issue_key"`
	TestCaseID      *uint     `json:"test_case_id,omitempty"`
	TestExecutionID *uint     `json:"test_execution_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func toResponse(l *jiralink.JiraLink) linkResponse {
	return linkResponse{
		ID:              l.ID,
		JiraProjectKey:  l.JiraProjectKey,
		JiraIssueKey:    l.JiraIssueKey,
		TestCaseID:      l.TestCaseID,
		TestExecutionID: l.TestExecutionID,
		CreatedAt:       l.CreatedAt,
	}
}

// Link associates a Jira issue with a case and/or execution.
func (h *Handler) Link(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		platformerrors.WriteValidationError(c, "invalid request payload: "+err.Error())
		return
	}

	link, err := h.service.Link(c.Request.Context(), jiralink.LinkParams{
		JiraProjectKey:  req.JiraProjectKey,
		JiraIssueKey:    req.JiraIssueKey,
		TestCaseID:      req.TestCaseID,
		TestExecutionID: req.TestExecutionID,
	})
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, toResponse(link))
}

// ListLinks returns links filtered by case, execution or issue key.
func (h *Handler) ListLinks(c *gin.Context) {
	var filter jiralink.Filter
	if raw := c.Query("test_case_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			platformerrors.WriteValidationError(c, "test_case_id must be a positive integer")
			return
		}
		caseID := uint(id)
		filter.TestCaseID = &caseID
	}
	if raw := c.Query("test_execution_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			platformerrors.WriteValidationError(c, "test_execution_id must be a positive integer")
			return
		}
		execID := uint(id)
		filter.TestExecutionID = &execID
	}
	filter.JiraIssueKey = c.Query("jira_issue_key")

	links, err := h.service.ListLinks(c.Request.Context(), filter)
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}

	items := make([]linkResponse, 0, len(links))
	for i := range links {
		items = append(items, toResponse(&links[i]))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// DeleteLink removes a link record.
func (h *Handler) DeleteLink(c *gin.Context) {
	id, ok := requests.ParseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteLink(c.Request.Context(), id); err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateStatus pushes an execution's outcome to every linked issue and
// reports per-issue results, including partial failures.
func (h *Handler) UpdateStatus(c *gin.Context) {
	executionID, ok := requests.ParseIDParam(c, "execution_id")
	if !ok {
		return
	}
	results, err := h.service.UpdateStatus(c.Request.Context(), executionID)
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
