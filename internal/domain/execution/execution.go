package execution

import (
	"context"
	"time"

	"testhub/internal/domain/query"
)

// Status is the outcome of a test execution or a single step.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
	StatusPending Status = "pending"
	StatusBlocked Status = "blocked"
)

// Valid reports whether the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusPassed, StatusFailed, StatusSkipped, StatusPending, StatusBlocked:
		return true
	}
	return false
}

// Terminal reports whether the status represents a finished run. Entering a
// terminal status stamps ExecutedAt.
func (s Status) Terminal() bool {
	switch s {
	case StatusPassed, StatusFailed, StatusSkipped:
		return true
	}
	return false
}

// Execution is one recorded attempt to run a case within a plan.
type Execution struct {
	ID         uint
	TestPlanID uint
	TestCaseID uint
	Status     Status
	ExecutedAt *time.Time
	ExecutedBy string
	Duration   *int // seconds
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StepResult is one step-level outcome within an execution.
type StepResult struct {
	ID              uint
	ExecutionID     uint
	StepNumber      int
	StepDescription string
	Status          Status
	ScreenshotURL   string
	Notes           string
}

// Filter narrows execution list queries.
type Filter struct {
	TestPlanID uint
	TestCaseID uint
	Status     *Status
}

// UpdateParams carries the fields of a partial execution update.
type UpdateParams struct {
	Status     *Status
	ExecutedAt *time.Time
	ExecutedBy *string
	Duration   *int
	Notes      *string
}

// Repository exposes data access for executions and their step results.
type Repository interface {
	Create(ctx context.Context, exec *Execution) error
	// CreateWithResults inserts an execution and its step results in one
	// transaction.
	CreateWithResults(ctx context.Context, exec *Execution, results []StepResult) error
	FindByID(ctx context.Context, id uint) (*Execution, error)
	FindMany(ctx context.Context, filter Filter, pagination *query.Pagination) ([]Execution, int64, error)
	// ListByPlan returns every execution of a plan, unpaginated.
	ListByPlan(ctx context.Context, planID uint) ([]Execution, error)
	Update(ctx context.Context, exec *Execution) error
	Delete(ctx context.Context, id uint) error

	AddResult(ctx context.Context, result *StepResult) error
	// ListResults returns step results ordered ascending by step number.
	ListResults(ctx context.Context, executionID uint) ([]StepResult, error)
}
