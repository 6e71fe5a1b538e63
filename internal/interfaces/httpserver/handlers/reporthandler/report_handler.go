package reporthandler

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"testhub/internal/domain/report"
	"testhub/internal/interfaces/httpserver/requests"
	"testhub/internal/utils/platformerrors"
)

var formatContentTypes = map[report.Format]string{
	report.FormatPDF:  "application/pdf",
	report.FormatHTML: "text/html; charset=utf-8",
}

// Handler manages report HTTP endpoints.
type Handler struct {
	service *report.Service
	logger  zerolog.Logger
}

// NewHandler constructs a new report handler.
func NewHandler(service *report.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With().Str("component", "report-handler").Logger(),
	}
}

type generateResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// Download streams the rendered artifact, generating it on a cache
// miss. The bytes served are exactly the bytes on disk.
func (h *Handler) Download(c *gin.Context) {
	planID, ok := requests.ParseID(c)
	if !ok {
		return
	}
	format, err := report.ParseFormat(c.Request.Context(), c.DefaultQuery("format", "pdf"))
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}

	path, err := h.service.GetOrCreateReport(c.Request.Context(), planID, format)
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}

	c.Header("Content-Type", formatContentTypes[format])
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	c.File(path)
}

// Generate schedules background rendering and returns a job token. The
// token only acknowledges scheduling; there is no status endpoint.
func (h *Handler) Generate(c *gin.Context) {
	planID, ok := requests.ParseID(c)
	if !ok {
		return
	}
	format, err := report.ParseFormat(c.Request.Context(), c.DefaultQuery("format", "pdf"))
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}

	jobID, err := h.service.StartGeneration(c.Request.Context(), planID, format)
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusAccepted, generateResponse{JobID: jobID, Status: "scheduled"})
}

// Summary returns the plan's execution statistics without rendering.
func (h *Handler) Summary(c *gin.Context) {
	planID, ok := requests.ParseID(c)
	if !ok {
		return
	}
	summary, err := h.service.Summarize(c.Request.Context(), planID)
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, summary)
}
