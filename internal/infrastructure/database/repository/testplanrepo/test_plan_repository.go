package testplanrepo

import (
	"context"

	"gorm.io/gorm"

	"testhub/internal/domain/query"
	"testhub/internal/domain/testplan"
	"testhub/internal/infrastructure/database/dbschema"
	"testhub/internal/utils/platformerrors"
)

type Repository struct {
	db *gorm.DB
}

func NewTestPlanGormRepository(db *gorm.DB) testplan.Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, plan *testplan.TestPlan) error {
	model := dbschema.TestPlanDtoE(plan)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create test plan")
	}
	*plan = *model.EtoD()
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*testplan.TestPlan, error) {
	var model dbschema.TestPlan
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to fetch test plan")
	}
	return model.EtoD(), nil
}

func (r *Repository) FindMany(ctx context.Context, filter testplan.Filter, pagination *query.Pagination) ([]testplan.TestPlan, int64, error) {
	tx := r.db.WithContext(ctx).Model(&dbschema.TestPlan{})
	if filter.IsActive != nil {
		tx = tx.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count test plans")
	}

	if pagination != nil {
		tx = tx.Offset(pagination.Offset).Limit(pagination.Limit)
	}

	var models []dbschema.TestPlan
	if err := tx.Order("id ASC").Find(&models).Error; err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list test plans")
	}

	plans := make([]testplan.TestPlan, 0, len(models))
	for _, m := range models {
		plans = append(plans, *m.EtoD())
	}
	return plans, total, nil
}

func (r *Repository) Update(ctx context.Context, plan *testplan.TestPlan) error {
	model := dbschema.TestPlanDtoE(plan)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to update test plan")
	}
	*plan = *model.EtoD()
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&dbschema.TestPlan{}, id).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to delete test plan")
	}
	return nil
}
