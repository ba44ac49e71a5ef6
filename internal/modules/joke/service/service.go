package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/authz"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/entity"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/joke/dto"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/joke/repository"
	search "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/search/service"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/apperror"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/database"
	"github.com/rs/zerolog"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

var errJokeNotFound = apperror.NotFound("joke not found")

type JokeService interface {
	ListJokes(ctx context.Context, sort string) ([]dto.JokeResponse, error)
	GetJoke(ctx context.Context, id uint) (*dto.JokeResponse, error)
	SearchJokes(ctx context.Context, query string, limit int) ([]dto.JokeResponse, error)
	CreateJoke(ctx context.Context, identity authz.Identity, input dto.CreateJokeRequest) (*dto.JokeResponse, error)
	UpdateJoke(ctx context.Context, identity authz.Identity, id uint, input dto.UpdateJokeRequest) (*dto.JokeResponse, error)
	DeleteJoke(ctx context.Context, identity authz.Identity, id uint) error
}

type jokeService struct {
	repo   repository.JokeRepository
	search search.JokeIndexer
	log    zerolog.Logger
}

// NewJokeService accepts a nil indexer; search then falls back to the database.
func NewJokeService(repo repository.JokeRepository, indexer search.JokeIndexer, log zerolog.Logger) JokeService {
	return &jokeService{repo: repo, search: indexer, log: log}
}

func (s *jokeService) ListJokes(ctx context.Context, sort string) ([]dto.JokeResponse, error) {
	rows, err := s.repo.List(ctx, normalizeSort(sort))
	if err != nil {
		return nil, database.TranslateError(err, nil)
	}
	return mapRows(rows), nil
}

func (s *jokeService) GetJoke(ctx context.Context, id uint) (*dto.JokeResponse, error) {
	row, err := s.repo.FindRowByID(ctx, id)
	if err != nil {
		return nil, database.TranslateError(err, errJokeNotFound)
	}
	res := mapToResponse(*row)
	return &res, nil
}

func (s *jokeService) SearchJokes(ctx context.Context, query string, limit int) ([]dto.JokeResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.InvalidInput("q is required")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	if s.search != nil {
		ids, err := s.search.SearchJokes(query, int64(limit))
		if err == nil {
			rows, err := s.repo.FindRowsByIDs(ctx, ids)
			if err != nil {
				return nil, database.TranslateError(err, nil)
			}
			return mapRows(rows), nil
		}
		s.log.Warn().Err(err).Str("query", query).Msg("search index unavailable, falling back to database")
	}

	rows, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, database.TranslateError(err, nil)
	}
	return mapRows(rows), nil
}

func (s *jokeService) CreateJoke(ctx context.Context, identity authz.Identity, input dto.CreateJokeRequest) (*dto.JokeResponse, error) {
	if isBlank(input.Title) || isBlank(input.Content) {
		return nil, apperror.InvalidInput("title and content are required")
	}
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}

	joke := &entity.Joke{
		UserID:  identity.ID,
		Title:   input.Title,
		Content: input.Content,
	}
	if err := s.repo.Create(ctx, joke); err != nil {
		return nil, database.TranslateError(err, nil)
	}

	s.index(joke, identity.Username)

	return &dto.JokeResponse{
		ID:        joke.ID,
		Title:     joke.Title,
		Content:   joke.Content,
		Author:    identity.Username,
		UserID:    joke.UserID,
		CreatedAt: joke.CreatedAt,
	}, nil
}

func (s *jokeService) UpdateJoke(ctx context.Context, identity authz.Identity, id uint, input dto.UpdateJokeRequest) (*dto.JokeResponse, error) {
	fields := map[string]interface{}{}
	if input.Title != nil && !isBlank(*input.Title) {
		if err := validateTitle(*input.Title); err != nil {
			return nil, err
		}
		fields["title"] = *input.Title
	}
	if input.Content != nil && !isBlank(*input.Content) {
		fields["content"] = *input.Content
	}
	if len(fields) == 0 {
		return nil, apperror.InvalidInput("title or content is required")
	}

	joke, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, database.TranslateError(err, errJokeNotFound)
	}
	if err := authz.RequireOwner(joke.UserID, identity); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, joke, fields); err != nil {
		return nil, database.TranslateError(err, errJokeNotFound)
	}

	row, err := s.repo.FindRowByID(ctx, id)
	if err != nil {
		return nil, database.TranslateError(err, errJokeNotFound)
	}

	res := mapToResponse(*row)
	s.index(&entity.Joke{ID: row.ID, UserID: row.UserID, Title: row.Title, Content: row.Content, CreatedAt: row.CreatedAt}, res.Author)
	return &res, nil
}

func (s *jokeService) DeleteJoke(ctx context.Context, identity authz.Identity, id uint) error {
	joke, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return database.TranslateError(err, errJokeNotFound)
	}
	if err := authz.RequireOwner(joke.UserID, identity); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return database.TranslateError(err, errJokeNotFound)
	}

	if s.search != nil {
		if err := s.search.DeleteJoke(id); err != nil {
			s.log.Error().Err(err).Uint("joke_id", id).Msg("failed to remove joke from search index")
		}
	}
	return nil
}

func (s *jokeService) index(joke *entity.Joke, author string) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexJoke(joke, author); err != nil {
		s.log.Error().Err(err).Uint("joke_id", joke.ID).Msg("failed to index joke")
	}
}

// Text is stored exactly as submitted; whitespace-only counts as missing.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validateTitle(title string) error {
	if utf8.RuneCountInString(title) > entity.JokeTitleMaxLength {
		return apperror.InvalidInput(fmt.Sprintf("title must be at most %d characters", entity.JokeTitleMaxLength))
	}
	return nil
}
