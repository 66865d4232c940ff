// Package category manages the quiz category catalog: listing, upserts and
// the active flag that gates question visibility.
package category

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/quizzical/quizzical-api/internal/db/repository"
)

// Store is the persistence surface the service needs.
type Store interface {
	Categories(ctx context.Context) ([]repository.Category, error)
	SaveCategory(ctx context.Context, title string, active *bool) (repository.SaveStatus, error)
	SetActive(ctx context.Context, title string, active bool) (bool, error)
}

// Service wraps category persistence with domain mapping.
type Service struct {
	store  Store
	logger zerolog.Logger
}

// NewService constructs a category service.
func NewService(store Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With().Str("component", "category_service").Logger(),
	}
}

// List returns every category, active or not.
func (s *Service) List(ctx context.Context) ([]Category, error) {
	rows, err := s.store.Categories(ctx)
	if err != nil {
		return nil, err
	}
	categories := make([]Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, Category{Title: row.Title, Active: row.Active})
	}
	return categories, nil
}

// Save upserts a category by title. A nil active keeps an existing row
// untouched; a new row defaults to active. The returned status tells whether
// the title was created or already present.
func (s *Service) Save(ctx context.Context, title string, active *bool) (repository.SaveStatus, error) {
	status, err := s.store.SaveCategory(ctx, title, active)
	if err != nil {
		return status, err
	}
	s.logger.Info().Str("title", title).Str("status", status.String()).Msg("category saved")
	return status, nil
}

// SetActive flips a category's visibility. It reports whether the stored
// flag actually changed.
func (s *Service) SetActive(ctx context.Context, title string, active bool) (bool, error) {
	changed, err := s.store.SetActive(ctx, title, active)
	if err != nil {
		return false, err
	}
	if changed {
		s.logger.Info().Str("title", title).Bool("active", active).Msg("category visibility changed")
	}
	return changed, nil
}
