package testcaserepo

import (
	"context"

	"gorm.io/gorm"

	"testhub/internal/domain/query"
	"testhub/internal/domain/testcase"
	"testhub/internal/infrastructure/database/dbschema"
	"testhub/internal/utils/platformerrors"
)

type Repository struct {
	db *gorm.DB
}

func NewTestCaseGormRepository(db *gorm.DB) testcase.Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, tc *testcase.TestCase) error {
	model := dbschema.TestCaseDtoE(tc)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create test case")
	}
	*tc = *model.EtoD()
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*testcase.TestCase, error) {
	var model dbschema.TestCase
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to fetch test case")
	}
	return model.EtoD(), nil
}

func (r *Repository) FindMany(ctx context.Context, filter testcase.Filter, pagination *query.Pagination) ([]testcase.TestCase, int64, error) {
	tx := r.db.WithContext(ctx).Model(&dbschema.TestCase{})
	if filter.Title != "" {
		tx = tx.Where("title ILIKE ?", "%"+filter.Title+"%")
	}
	if filter.TestType != nil {
		tx = tx.Where("test_type = ?", string(*filter.TestType))
	}
	if filter.Priority != nil {
		tx = tx.Where("priority = ?", string(*filter.Priority))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count test cases")
	}

	if pagination != nil {
		tx = tx.Offset(pagination.Offset).Limit(pagination.Limit)
	}

	var models []dbschema.TestCase
	if err := tx.Order("id ASC").Find(&models).Error; err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list test cases")
	}

	cases := make([]testcase.TestCase, 0, len(models))
	for _, m := range models {
		cases = append(cases, *m.EtoD())
	}
	return cases, total, nil
}

func (r *Repository) Update(ctx context.Context, tc *testcase.TestCase) error {
	model := dbschema.TestCaseDtoE(tc)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to update test case")
	}
	*tc = *model.EtoD()
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&dbschema.TestCase{}, id).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to delete test case")
	}
	return nil
}
