package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"testhub/internal/domain/apikey"
	"testhub/internal/interfaces/httpserver/middlewares"
)

type staticKeyRepo struct {
	active map[string]*apikey.APIKey
}

func (r *staticKeyRepo) Create(ctx context.Context, key *apikey.APIKey) (*apikey.APIKey, error) {
	return key, nil
}
func (r *staticKeyRepo) List(ctx context.Context) ([]apikey.APIKey, error) { return nil, nil }
func (r *staticKeyRepo) FindByID(ctx context.Context, id uint) (*apikey.APIKey, error) {
	return nil, nil
}
func (r *staticKeyRepo) FindActiveByKey(ctx context.Context, secret string) (*apikey.APIKey, error) {
	return r.active[secret], nil
}
func (r *staticKeyRepo) Deactivate(ctx context.Context, id uint) error { return nil }

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &staticKeyRepo{active: map[string]*apikey.APIKey{
		"valid-secret": {ID: 1, Key: "valid-secret", Name: "ci", IsActive: true},
	}}
	service := apikey.NewService(repo, zerolog.Nop())

	router := gin.New()
	router.POST("/upload", middlewares.APIKeyAuth(service, zerolog.Nop()), func(c *gin.Context) {
		key, ok := middlewares.APIKeyFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "key missing from context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"key_name": key.Name})
	})
	return router
}

func TestAPIKeyAuth(t *testing.T) {
	router := newAuthRouter(t)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{name: "valid key", header: "valid-secret", expectedStatus: http.StatusOK},
		{name: "missing key", header: "", expectedStatus: http.StatusUnauthorized},
		{name: "unknown key", header: "bogus", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/upload", nil)
			if tt.header != "" {
				req.Header.Set("X-API-Key", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d, body %s", rec.Code, tt.expectedStatus, rec.Body.String())
			}
		})
	}
}
