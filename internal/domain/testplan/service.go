package testplan

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"testhub/internal/domain/query"
	"testhub/internal/utils/platformerrors"
)

// Service orchestrates test plan lifecycle operations.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService wires the plan service with its repository.
func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "testplan-service").Logger(),
	}
}

// CreateParams carries the fields of a new plan.
type CreateParams struct {
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	IsActive    *bool
}

// Create persists a new test plan.
func (s *Service) Create(ctx context.Context, params CreateParams) (*TestPlan, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "plan name is required", nil)
	}

	plan := &TestPlan{
		Name:        params.Name,
		Description: params.Description,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		IsActive:    true,
	}
	if params.IsActive != nil {
		plan.IsActive = *params.IsActive
	}

	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Get fetches a plan by id.
func (s *Service) Get(ctx context.Context, id uint) (*TestPlan, error) {
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound, "test plan not found", nil)
	}
	return plan, nil
}

// List returns plans matching the filter, with total count.
func (s *Service) List(ctx context.Context, filter Filter, pagination *query.Pagination) ([]TestPlan, int64, error) {
	return s.repo.FindMany(ctx, filter, pagination)
}

// Update applies a partial update to a plan.
func (s *Service) Update(ctx context.Context, id uint, params UpdateParams) (*TestPlan, error) {
	plan, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeValidation, "plan name cannot be empty", nil)
		}
		plan.Name = *params.Name
	}
	if params.Description != nil {
		plan.Description = *params.Description
	}
	if params.StartDate != nil {
		plan.StartDate = params.StartDate
	}
	if params.EndDate != nil {
		plan.EndDate = params.EndDate
	}
	if params.IsActive != nil {
		plan.IsActive = *params.IsActive
	}

	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Delete removes a plan. Dependent executions are removed by the store's
// cascade constraint.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
