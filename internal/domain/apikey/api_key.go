package apikey

import (
	"context"
	"time"
)

// APIKey is an opaque secret used to authenticate automated result
// upload clients. The secret itself is the credential; there is no
// associated user account.
type APIKey struct {
	ID          uint      `json:"id"`
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Repository defines storage operations for API keys.
type Repository interface {
	Create(ctx context.Context, key *APIKey) (*APIKey, error)
	List(ctx context.Context) ([]APIKey, error)
	FindByID(ctx context.Context, id uint) (*APIKey, error)
	FindActiveByKey(ctx context.Context, key string) (*APIKey, error)
	Deactivate(ctx context.Context, id uint) error
}
