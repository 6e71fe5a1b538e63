package testcase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"testhub/internal/domain/query"
	"testhub/internal/utils/platformerrors"
)

// Service orchestrates test case lifecycle operations.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService wires the case service with its repository.
func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "testcase-service").Logger(),
	}
}

// CreateParams carries the fields of a new test case.
type CreateParams struct {
	Title          string
	Description    string
	Prerequisites  string
	Steps          string
	ExpectedResult string
	TestType       CaseType
	Priority       Priority
	CreatedBy      string
}

// Create persists a new test case. Unknown enum values are rejected.
func (s *Service) Create(ctx context.Context, params CreateParams) (*TestCase, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "case title is required", nil)
	}
	if strings.TrimSpace(params.Steps) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "case steps are required", nil)
	}
	if strings.TrimSpace(params.ExpectedResult) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "expected result is required", nil)
	}

	if params.TestType == "" {
		params.TestType = CaseTypeManual
	}
	if !params.TestType.Valid() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "unknown test type: "+string(params.TestType), nil)
	}
	if params.Priority == "" {
		params.Priority = PriorityMedium
	}
	if !params.Priority.Valid() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "unknown priority: "+string(params.Priority), nil)
	}

	tc := &TestCase{
		Title:          params.Title,
		Description:    params.Description,
		Prerequisites:  params.Prerequisites,
		Steps:          params.Steps,
		ExpectedResult: params.ExpectedResult,
		TestType:       params.TestType,
		Priority:       params.Priority,
		CreatedBy:      params.CreatedBy,
	}
	if err := s.repo.Create(ctx, tc); err != nil {
		return nil, err
	}
	return tc, nil
}

// Get fetches a case by id.
func (s *Service) Get(ctx context.Context, id uint) (*TestCase, error) {
	tc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tc == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound, "test case not found", nil)
	}
	return tc, nil
}

// List returns cases matching the filter, with total count.
func (s *Service) List(ctx context.Context, filter Filter, pagination *query.Pagination) ([]TestCase, int64, error) {
	if filter.TestType != nil && !filter.TestType.Valid() {
		return nil, 0, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "unknown test type filter", nil)
	}
	if filter.Priority != nil && !filter.Priority.Valid() {
		return nil, 0, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "unknown priority filter", nil)
	}
	return s.repo.FindMany(ctx, filter, pagination)
}

// Update applies a partial update to a case.
func (s *Service) Update(ctx context.Context, id uint, params UpdateParams) (*TestCase, error) {
	tc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		if strings.TrimSpace(*params.Title) == "" {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeValidation, "case title cannot be empty", nil)
		}
		tc.Title = *params.Title
	}
	if params.Description != nil {
		tc.Description = *params.Description
	}
	if params.Prerequisites != nil {
		tc.Prerequisites = *params.Prerequisites
	}
	if params.Steps != nil {
		tc.Steps = *params.Steps
	}
	if params.ExpectedResult != nil {
		tc.ExpectedResult = *params.ExpectedResult
	}
	if params.TestType != nil {
		if !params.TestType.Valid() {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeValidation, "unknown test type: "+string(*params.TestType), nil)
		}
		tc.TestType = *params.TestType
	}
	if params.Priority != nil {
		if !params.Priority.Valid() {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeValidation, "unknown priority: "+string(*params.Priority), nil)
		}
		tc.Priority = *params.Priority
	}

	if err := s.repo.Update(ctx, tc); err != nil {
		return nil, err
	}
	return tc, nil
}

// Delete removes a case and, via cascade, its executions.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
