package dbschema

import (
	"time"

	"testhub/internal/domain/apikey"
	"testhub/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(&APIKey{})
}

// APIKey stores upload client credentials.
type APIKey struct {
	ID          uint   `gorm:"primaryKey"`
	Key         string `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name        string `gorm:"type:varchar(128);not null"`
	Description string `gorm:"type:text"`
	IsActive    bool   `gorm:"not null;default:true;index"`
	CreatedAt   time.Time
}

// EtoD converts schema model to domain representation.
func (k *APIKey) EtoD() *apikey.APIKey {
	if k == nil {
		return nil
	}
	return &apikey.APIKey{
		ID:          k.ID,
		Key:         k.Key,
		Name:        k.Name,
		Description: k.Description,
		IsActive:    k.IsActive,
		CreatedAt:   k.CreatedAt,
	}
}

// APIKeyDtoE converts domain model to schema representation.
func APIKeyDtoE(key *apikey.APIKey) *APIKey {
	if key == nil {
		return nil
	}
	return &APIKey{
		ID:          key.ID,
		Key:         key.Key,
		Name:        key.Name,
		Description: key.Description,
		IsActive:    key.IsActive,
		CreatedAt:   key.CreatedAt,
	}
}
