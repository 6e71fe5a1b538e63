package testcase

import (
	"context"
	"time"

	"testhub/internal/domain/query"
)

// CaseType classifies how a test case is executed.
type CaseType string

const (
	CaseTypeManual    CaseType = "manual"
	CaseTypeAutomated CaseType = "automated"
	CaseTypeHybrid    CaseType = "hybrid"
)

// Valid reports whether the case type is a known value.
func (t CaseType) Valid() bool {
	switch t {
	case CaseTypeManual, CaseTypeAutomated, CaseTypeHybrid:
		return true
	}
	return false
}

// Priority ranks test cases.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Valid reports whether the priority is a known value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// TestCase is a reusable definition of steps and expected outcome.
type TestCase struct {
	ID             uint
	Title          string
	Description    string
	Prerequisites  string
	Steps          string
	ExpectedResult string
	TestType       CaseType
	Priority       Priority
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Filter narrows case list queries.
type Filter struct {
	Title    string
	TestType *CaseType
	Priority *Priority
}

// UpdateParams carries the fields of a partial case update.
type UpdateParams struct {
	Title          *string
	Description    *string
	Prerequisites  *string
	Steps          *string
	ExpectedResult *string
	TestType       *CaseType
	Priority       *Priority
}

// Repository exposes data access for test cases.
type Repository interface {
	Create(ctx context.Context, tc *TestCase) error
	FindByID(ctx context.Context, id uint) (*TestCase, error)
	FindMany(ctx context.Context, filter Filter, pagination *query.Pagination) ([]TestCase, int64, error)
	Update(ctx context.Context, tc *TestCase) error
	Delete(ctx context.Context, id uint) error
}
