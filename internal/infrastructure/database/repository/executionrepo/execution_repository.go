package executionrepo

import (
	"context"

	"gorm.io/gorm"

	"testhub/internal/domain/execution"
	"testhub/internal/domain/query"
	"testhub/internal/infrastructure/database/dbschema"
	"testhub/internal/utils/platformerrors"
)

type Repository struct {
	db *gorm.DB
}

func NewExecutionGormRepository(db *gorm.DB) execution.Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, exec *execution.Execution) error {
	model := dbschema.TestExecutionDtoE(exec)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create test execution")
	}
	*exec = *model.EtoD()
	return nil
}

func (r *Repository) CreateWithResults(ctx context.Context, exec *execution.Execution, results []execution.StepResult) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := dbschema.TestExecutionDtoE(exec)
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		for i := range results {
			results[i].ExecutionID = model.ID
			resultModel := dbschema.TestResultDtoE(&results[i])
			if err := tx.Create(resultModel).Error; err != nil {
				return err
			}
			results[i] = *resultModel.EtoD()
		}
		*exec = *model.EtoD()
		return nil
	})
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create execution with results")
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*execution.Execution, error) {
	var model dbschema.TestExecution
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to fetch test execution")
	}
	return model.EtoD(), nil
}

func (r *Repository) FindMany(ctx context.Context, filter execution.Filter, pagination *query.Pagination) ([]execution.Execution, int64, error) {
	tx := r.db.WithContext(ctx).Model(&dbschema.TestExecution{})
	if filter.TestPlanID != 0 {
		tx = tx.Where("test_plan_id = ?", filter.TestPlanID)
	}
	if filter.TestCaseID != 0 {
		tx = tx.Where("test_case_id = ?", filter.TestCaseID)
	}
	if filter.Status != nil {
		tx = tx.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count test executions")
	}

	if pagination != nil {
		tx = tx.Offset(pagination.Offset).Limit(pagination.Limit)
	}

	var models []dbschema.TestExecution
	if err := tx.Order("id ASC").Find(&models).Error; err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list test executions")
	}

	executions := make([]execution.Execution, 0, len(models))
	for _, m := range models {
		executions = append(executions, *m.EtoD())
	}
	return executions, total, nil
}

func (r *Repository) ListByPlan(ctx context.Context, planID uint) ([]execution.Execution, error) {
	var models []dbschema.TestExecution
	if err := r.db.WithContext(ctx).
		Where("test_plan_id = ?", planID).
		Order("id ASC").
		Find(&models).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list plan executions")
	}
	executions := make([]execution.Execution, 0, len(models))
	for _, m := range models {
		executions = append(executions, *m.EtoD())
	}
	return executions, nil
}

func (r *Repository) Update(ctx context.Context, exec *execution.Execution) error {
	model := dbschema.TestExecutionDtoE(exec)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to update test execution")
	}
	*exec = *model.EtoD()
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&dbschema.TestExecution{}, id).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to delete test execution")
	}
	return nil
}

func (r *Repository) AddResult(ctx context.Context, result *execution.StepResult) error {
	model := dbschema.TestResultDtoE(result)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create step result")
	}
	*result = *model.EtoD()
	return nil
}

func (r *Repository) ListResults(ctx context.Context, executionID uint) ([]execution.StepResult, error) {
	var models []dbschema.TestResult
	if err := r.db.WithContext(ctx).
		Where("execution_id = ?", executionID).
		Order("step_number ASC").
		Find(&models).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list step results")
	}
	results := make([]execution.StepResult, 0, len(models))
	for _, m := range models {
		results = append(results, *m.EtoD())
	}
	return results, nil
}
