package apikey

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"testhub/internal/utils/platformerrors"
)

// Service orchestrates API key lifecycle and authentication.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "api-key-service").Logger(),
	}
}

// CreateKey generates a new random secret and persists it. Keys start
// active.
func (s *Service) CreateKey(ctx context.Context, name, description string) (*APIKey, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"name is required", nil)
	}

	record := &APIKey{
		Key:         uuid.NewString(),
		Name:        name,
		Description: description,
		IsActive:    true,
	}
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("key_id", created.ID).Str("name", created.Name).Msg("api key created")
	return created, nil
}

// ListKeys returns all keys, active and deactivated.
func (s *Service) ListKeys(ctx context.Context) ([]APIKey, error) {
	return s.repo.List(ctx)
}

// DeactivateKey disables a key. Deactivation is permanent; a replaced
// client gets a fresh key instead.
func (s *Service) DeactivateKey(ctx context.Context, id uint) error {
	key, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if key == nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("api key %d not found", id), nil)
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.log.Info().Uint("key_id", id).Msg("api key deactivated")
	return nil
}

// Authenticate resolves a presented secret to an active key.
func (s *Service) Authenticate(ctx context.Context, secret string) (*APIKey, error) {
	if secret == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized,
			"missing api key", nil)
	}
	key, err := s.repo.FindActiveByKey(ctx, secret)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized,
			"invalid api key", nil)
	}
	return key, nil
}
