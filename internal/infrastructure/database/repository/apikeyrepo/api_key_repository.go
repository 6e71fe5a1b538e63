package apikeyrepo

import (
	"context"

	"gorm.io/gorm"

	"testhub/internal/domain/apikey"
	"testhub/internal/infrastructure/database/dbschema"
	"testhub/internal/utils/platformerrors"
)

type Repository struct {
	db *gorm.DB
}

func NewAPIKeyGormRepository(db *gorm.DB) apikey.Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, key *apikey.APIKey) (*apikey.APIKey, error) {
	model := dbschema.APIKeyDtoE(key)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create api key")
	}
	return model.EtoD(), nil
}

func (r *Repository) List(ctx context.Context) ([]apikey.APIKey, error) {
	var models []dbschema.APIKey
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list api keys")
	}
	keys := make([]apikey.APIKey, 0, len(models))
	for _, m := range models {
		keys = append(keys, *m.EtoD())
	}
	return keys, nil
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*apikey.APIKey, error) {
	var model dbschema.APIKey
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to fetch api key")
	}
	return model.EtoD(), nil
}

func (r *Repository) FindActiveByKey(ctx context.Context, key string) (*apikey.APIKey, error) {
	var model dbschema.APIKey
	if err := r.db.WithContext(ctx).
		Where("key = ? AND is_active = ?", key, true).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to fetch api key by secret")
	}
	return model.EtoD(), nil
}

func (r *Repository) Deactivate(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Model(&dbschema.APIKey{}).
		Where("id = ?", id).
		Update("is_active", false).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to deactivate api key")
	}
	return nil
}
