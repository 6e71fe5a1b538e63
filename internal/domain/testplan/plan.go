package testplan

import (
	"context"
	"time"

	"testhub/internal/domain/query"
)

// TestPlan groups test executions over a time window.
type TestPlan struct {
	ID          uint
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter narrows plan list queries.
type Filter struct {
	IsActive *bool
}

// UpdateParams carries the fields of a partial plan update. Nil means
// "leave unchanged".
type UpdateParams struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	IsActive    *bool
}

// Repository exposes data access for test plans.
type Repository interface {
	Create(ctx context.Context, plan *TestPlan) error
	FindByID(ctx context.Context, id uint) (*TestPlan, error)
	FindMany(ctx context.Context, filter Filter, pagination *query.Pagination) ([]TestPlan, int64, error)
	Update(ctx context.Context, plan *TestPlan) error
	Delete(ctx context.Context, id uint) error
}
