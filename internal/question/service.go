// Package question serves the question catalog: paginated reads per
// category and validated, transactional writes.
package question

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/quizzical/quizzical-api/internal/db/repository"
	"github.com/quizzical/quizzical-api/internal/pagination"
)

// Store is the persistence surface the service needs.
type Store interface {
	Questions(ctx context.Context, category string, limit, offset int) ([]repository.Question, error)
	CountQuestions(ctx context.Context, category string) (int64, error)
	SaveQuestion(ctx context.Context, params repository.SaveQuestionParams) (repository.Question, error)
}

// PageCache defines cache behavior (implemented by the Redis-backed Cache).
type PageCache interface {
	GetPage(ctx context.Context, category string, page, size int) (*pagination.Page[Question], error)
	SetPage(ctx context.Context, category string, page, size int, p pagination.Page[Question]) error
	Invalidate(ctx context.Context, category string) error
}

// Service orchestrates question reads and writes over the store and cache.
type Service struct {
	store  Store
	cache  PageCache
	logger zerolog.Logger
}

// NewService constructs a question service. cache may be nil; the service
// then always reads through to the store.
func NewService(store Store, cache PageCache, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		logger: logger.With().Str("component", "question_service").Logger(),
	}
}

// List returns one page of questions for a category. Page and size are
// normalized before any lookup, so page 0 and page 1 share a cache entry
// and a result. Cache failures degrade to a store read, never to an error.
func (s *Service) List(ctx context.Context, category string, page, size int) (pagination.Page[Question], error) {
	page = pagination.ClampPage(page)
	size = pagination.ClampLimit(size)

	if s.cache != nil {
		cached, err := s.cache.GetPage(ctx, category, page, size)
		if err != nil {
			s.logger.Warn().Err(err).Str("category", category).Msg("cache read failed")
		} else if cached != nil {
			cacheHits.Inc()
			pagesServed.Inc()
			return *cached, nil
		}
	}

	total, err := s.store.CountQuestions(ctx, category)
	if err != nil {
		return pagination.Page[Question]{}, err
	}

	rows, err := s.store.Questions(ctx, category, size, pagination.Offset(page, size))
	if err != nil {
		return pagination.Page[Question]{}, err
	}

	questions := make([]Question, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, toDomain(row))
	}

	result := pagination.New(questions, page, total, size)

	if s.cache != nil {
		if err := s.cache.SetPage(ctx, category, page, size, result); err != nil {
			s.logger.Warn().Err(err).Str("category", category).Msg("cache write failed")
		}
	}

	pagesServed.Inc()
	return result, nil
}

// Count reports how many questions an active category holds. An absent or
// inactive category counts as zero.
func (s *Service) Count(ctx context.Context, category string) (int64, error) {
	return s.store.CountQuestions(ctx, category)
}

// Save validates and stores a question with all of its choices. Nothing
// reaches the store when validation fails. A successful write invalidates
// the category's cached pages.
func (s *Service) Save(ctx context.Context, q NewQuestion) (Question, error) {
	if err := validate(q); err != nil {
		return Question{}, err
	}

	params := repository.SaveQuestionParams{
		Text:     q.Text,
		Category: q.Category,
		Choices:  make([]repository.ChoiceParams, 0, len(q.Choices)),
	}
	for _, c := range q.Choices {
		params.Choices = append(params.Choices, repository.ChoiceParams{Title: c.Title, Correct: c.Correct})
	}

	saved, err := s.store.SaveQuestion(ctx, params)
	if err != nil {
		return Question{}, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, q.Category); err != nil {
			s.logger.Warn().Err(err).Str("category", q.Category).Msg("cache invalidation failed")
		}
	}

	questionsCreated.Inc()
	s.logger.Info().Int64("id", saved.ID).Str("category", saved.Category).Msg("question created")
	return toDomain(saved), nil
}

func toDomain(row repository.Question) Question {
	choices := make([]Choice, 0, len(row.Choices))
	for _, c := range row.Choices {
		choices = append(choices, Choice{ID: c.ID, Title: c.Title, Correct: c.Correct})
	}
	return Question{
		ID:       row.ID,
		Text:     row.Text,
		Category: row.Category,
		Choices:  choices,
	}
}
