package execution

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"testhub/internal/domain/query"
	"testhub/internal/domain/testcase"
	"testhub/internal/domain/testplan"
	"testhub/internal/utils/platformerrors"
)

// Service orchestrates execution lifecycle operations.
type Service struct {
	repo  Repository
	plans testplan.Repository
	cases testcase.Repository
	log   zerolog.Logger
}

// NewService wires the execution service with its repositories.
func NewService(repo Repository, plans testplan.Repository, cases testcase.Repository, log zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		plans: plans,
		cases: cases,
		log:   log.With().Str("component", "execution-service").Logger(),
	}
}

// CreateParams carries the fields of a new execution record.
type CreateParams struct {
	TestPlanID uint
	TestCaseID uint
	Status     Status
	ExecutedAt *time.Time
	ExecutedBy string
	Duration   *int
	Notes      string
}

// Create records a new execution. Both the plan and the case must exist.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Execution, error) {
	if params.TestPlanID == 0 || params.TestCaseID == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "test_plan_id and test_case_id are required", nil)
	}
	if params.Status == "" {
		params.Status = StatusPending
	}
	if !params.Status.Valid() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "unknown execution status: "+string(params.Status), nil)
	}
	if params.Duration != nil && *params.Duration < 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "duration must be non-negative", nil)
	}

	plan, err := s.plans.FindByID(ctx, params.TestPlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound, "test plan not found", nil)
	}
	tc, err := s.cases.FindByID(ctx, params.TestCaseID)
	if err != nil {
		return nil, err
	}
	if tc == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound, "test case not found", nil)
	}

	exec := &Execution{
		TestPlanID: params.TestPlanID,
		TestCaseID: params.TestCaseID,
		Status:     params.Status,
		ExecutedAt: params.ExecutedAt,
		ExecutedBy: params.ExecutedBy,
		Duration:   params.Duration,
		Notes:      params.Notes,
	}
	if exec.Status.Terminal() && exec.ExecutedAt == nil {
		now := time.Now()
		exec.ExecutedAt = &now
	}

	if err := s.repo.Create(ctx, exec); err != nil {
		return nil, err
	}
	return exec, nil
}

// Get fetches an execution by id.
func (s *Service) Get(ctx context.Context, id uint) (*Execution, error) {
	exec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exec == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound, "test execution not found", nil)
	}
	return exec, nil
}

// List returns executions matching the filter, with total count.
func (s *Service) List(ctx context.Context, filter Filter, pagination *query.Pagination) ([]Execution, int64, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, 0, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "unknown status filter", nil)
	}
	return s.repo.FindMany(ctx, filter, pagination)
}

// Update applies a partial update. Moving into a terminal status stamps
// ExecutedAt with the transition time when it was never recorded.
func (s *Service) Update(ctx context.Context, id uint, params UpdateParams) (*Execution, error) {
	exec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Status != nil {
		if !params.Status.Valid() {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeValidation, "unknown execution status: "+string(*params.Status), nil)
		}
		exec.Status = *params.Status
		if exec.Status.Terminal() && exec.ExecutedAt == nil && params.ExecutedAt == nil {
			now := time.Now()
			exec.ExecutedAt = &now
		}
	}
	if params.ExecutedAt != nil {
		exec.ExecutedAt = params.ExecutedAt
	}
	if params.ExecutedBy != nil {
		exec.ExecutedBy = *params.ExecutedBy
	}
	if params.Duration != nil {
		if *params.Duration < 0 {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeValidation, "duration must be non-negative", nil)
		}
		exec.Duration = params.Duration
	}
	if params.Notes != nil {
		exec.Notes = *params.Notes
	}

	if err := s.repo.Update(ctx, exec); err != nil {
		return nil, err
	}
	return exec, nil
}

// Delete removes an execution and, via cascade, its step results.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// AddResult appends a step result to an existing execution.
func (s *Service) AddResult(ctx context.Context, executionID uint, result StepResult) (*StepResult, error) {
	if _, err := s.Get(ctx, executionID); err != nil {
		return nil, err
	}
	if result.StepNumber <= 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "step_number must be positive", nil)
	}
	if strings.TrimSpace(result.StepDescription) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "step_description is required", nil)
	}
	if !result.Status.Valid() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "unknown step status: "+string(result.Status), nil)
	}

	result.ExecutionID = executionID
	if err := s.repo.AddResult(ctx, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListResults returns an execution's step results sorted by step number.
func (s *Service) ListResults(ctx context.Context, executionID uint) ([]StepResult, error) {
	if _, err := s.Get(ctx, executionID); err != nil {
		return nil, err
	}
	return s.repo.ListResults(ctx, executionID)
}
