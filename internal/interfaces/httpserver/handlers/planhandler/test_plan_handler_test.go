package planhandler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"testhub/internal/domain/query"
	"testhub/internal/domain/testplan"
	"testhub/internal/interfaces/httpserver/handlers/planhandler"
)

// memoryPlanRepo is an in-memory testplan.Repository.
type memoryPlanRepo struct {
	nextID uint
	plans  map[uint]*testplan.TestPlan
}

func newMemoryPlanRepo() *memoryPlanRepo {
	return &memoryPlanRepo{nextID: 1, plans: make(map[uint]*testplan.TestPlan)}
}

func (r *memoryPlanRepo) Create(ctx context.Context, plan *testplan.TestPlan) error {
	plan.ID = r.nextID
	r.nextID++
	stored := *plan
	r.plans[plan.ID] = &stored
	return nil
}

func (r *memoryPlanRepo) FindByID(ctx context.Context, id uint) (*testplan.TestPlan, error) {
	plan, ok := r.plans[id]
	if !ok {
		return nil, nil
	}
	copied := *plan
	return &copied, nil
}

func (r *memoryPlanRepo) FindMany(ctx context.Context, filter testplan.Filter, pagination *query.Pagination) ([]testplan.TestPlan, int64, error) {
	var out []testplan.TestPlan
	for _, plan := range r.plans {
		if filter.IsActive != nil && plan.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, *plan)
	}
	return out, int64(len(out)), nil
}

func (r *memoryPlanRepo) Update(ctx context.Context, plan *testplan.TestPlan) error {
	stored := *plan
	r.plans[plan.ID] = &stored
	return nil
}

func (r *memoryPlanRepo) Delete(ctx context.Context, id uint) error {
	delete(r.plans, id)
	return nil
}

func newPlanRouter(t *testing.T) (*gin.Engine, *memoryPlanRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newMemoryPlanRepo()
	handler := planhandler.NewHandler(testplan.NewService(repo, zerolog.Nop()), zerolog.Nop())

	router := gin.New()
	router.POST("/v1/test-plans", handler.Create)
	router.GET("/v1/test-plans", handler.List)
	router.GET("/v1/test-plans/:id", handler.Get)
	router.PUT("/v1/test-plans/:id", handler.Update)
	router.DELETE("/v1/test-plans/:id", handler.Delete)
	return router, repo
}

func TestCreatePlan(t *testing.T) {
	router, repo := newPlanRouter(t)

	body, _ := json.Marshal(map[string]interface{}{
		"name":        "Release 2.4 Regression",
		"description": "full regression before release",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/test-plans", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp struct {
		ID       uint   `json:"id"`
		Name     string `json:"name"`
		IsActive bool   `json:"is_active"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.ID == 0 || resp.Name != "Release 2.4 Regression" || !resp.IsActive {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(repo.plans) != 1 {
		t.Errorf("expected 1 stored plan, got %d", len(repo.plans))
	}
}

func TestCreatePlan_MissingName(t *testing.T) {
	router, _ := newPlanRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/test-plans", bytes.NewReader([]byte(`{"description":"no name"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGetPlan_NotFound(t *testing.T) {
	router, _ := newPlanRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/test-plans/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestListPlans(t *testing.T) {
	router, repo := newPlanRouter(t)
	repo.plans[1] = &testplan.TestPlan{ID: 1, Name: "Active", IsActive: true}
	repo.plans[2] = &testplan.TestPlan{ID: 2, Name: "Archived", IsActive: false}
	repo.nextID = 3

	req := httptest.NewRequest(http.MethodGet, "/v1/test-plans?is_active=true", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
		Total    int64 `json:"total"`
		Page     int   `json:"page"`
		PageSize int   `json:"page_size"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Total != 1 || len(resp.Items) != 1 || resp.Items[0].Name != "Active" {
		t.Errorf("unexpected list response: %+v", resp)
	}
	if resp.Page != 1 || resp.PageSize != 10 {
		t.Errorf("unexpected paging defaults: page=%d page_size=%d", resp.Page, resp.PageSize)
	}
}

func TestUpdatePlan(t *testing.T) {
	router, repo := newPlanRouter(t)
	repo.plans[1] = &testplan.TestPlan{ID: 1, Name: "Old Name", IsActive: true}
	repo.nextID = 2

	body := []byte(`{"name":"New Name","is_active":false}`)
	req := httptest.NewRequest(http.MethodPut, "/v1/test-plans/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if repo.plans[1].Name != "New Name" || repo.plans[1].IsActive {
		t.Errorf("plan not updated: %+v", repo.plans[1])
	}
}

func TestDeletePlan(t *testing.T) {
	router, repo := newPlanRouter(t)
	repo.plans[1] = &testplan.TestPlan{ID: 1, Name: "Doomed"}
	repo.nextID = 2

	req := httptest.NewRequest(http.MethodDelete, "/v1/test-plans/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if len(repo.plans) != 0 {
		t.Error("plan not removed")
	}

	req = httptest.NewRequest(http.MethodDelete, "/v1/test-plans/1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleting a missing plan: status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
