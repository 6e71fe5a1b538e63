package apikeyhandler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"testhub/internal/domain/apikey"
	"testhub/internal/interfaces/httpserver/requests"
	"testhub/internal/utils/platformerrors"
)

// Handler manages API key HTTP endpoints.
type Handler struct {
	service *apikey.Service
	logger  zerolog.Logger
}

// NewHandler constructs a new API key handler.
func NewHandler(service *apikey.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With().Str("component", "api-key-handler").Logger(),
	}
}

type createRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type apiKeyResponse struct {
	ID          uint      `json:"id"`
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func toResponse(k *apikey.APIKey) apiKeyResponse {
	return apiKeyResponse{
		ID:          k.ID,
		Key:         k.Key,
		Name:        k.Name,
		Description: k.Description,
		IsActive:    k.IsActive,
		CreatedAt:   k.CreatedAt,
	}
}

// Create issues a new upload credential.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		platformerrors.WriteValidationError(c, "invalid request payload: "+err.Error())
		return
	}

	key, err := h.service.CreateKey(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, toResponse(key))
}

// List returns all keys.
func (h *Handler) List(c *gin.Context) {
	keys, err := h.service.ListKeys(c.Request.Context())
	if err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}

	items := make([]apiKeyResponse, 0, len(keys))
	for i := range keys {
		items = append(items, toResponse(&keys[i]))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Deactivate disables a key.
func (h *Handler) Deactivate(c *gin.Context) {
	id, ok := requests.ParseID(c)
	if !ok {
		return
	}
	if err := h.service.DeactivateKey(c.Request.Context(), id); err != nil {
		platformerrors.WriteError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "api key deactivated"})
}
