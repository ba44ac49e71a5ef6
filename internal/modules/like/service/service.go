package service

import (
	"context"
	"errors"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/authz"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/entity"
	jokeRepo "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/joke/repository"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/like/repository"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/apperror"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/database"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	errJokeNotFound = apperror.NotFound("joke not found")
	errNotLiked     = apperror.NotFound("like not found")
	errAlreadyLiked = apperror.Conflict("you already liked this joke")
)

type LikeService interface {
	// Like returns the joke's like count after the like is recorded.
	Like(ctx context.Context, identity authz.Identity, jokeID uint) (int64, error)
	Unlike(ctx context.Context, identity authz.Identity, jokeID uint) (int64, error)
	CheckLiked(ctx context.Context, identity authz.Identity, jokeID uint) (bool, error)
	// TrackShare acknowledges a share. Nothing is persisted.
	TrackShare(ctx context.Context, jokeID uint) error
}

type likeService struct {
	repo  repository.LikeRepository
	jokes jokeRepo.JokeRepository
	log   zerolog.Logger
}

func NewLikeService(repo repository.LikeRepository, jokes jokeRepo.JokeRepository, log zerolog.Logger) LikeService {
	return &likeService{repo: repo, jokes: jokes, log: log}
}

func (s *likeService) requireJoke(ctx context.Context, jokeID uint) error {
	exists, err := s.jokes.Exists(ctx, jokeID)
	if err != nil {
		return database.TranslateError(err, nil)
	}
	if !exists {
		return errJokeNotFound
	}
	return nil
}

func (s *likeService) Like(ctx context.Context, identity authz.Identity, jokeID uint) (int64, error) {
	if err := s.requireJoke(ctx, jokeID); err != nil {
		return 0, err
	}

	// Concurrent likes by the same user are settled by the primary key.
	if err := s.repo.Create(ctx, &entity.Like{UserID: identity.ID, JokeID: jokeID}); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return 0, errAlreadyLiked
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return 0, errJokeNotFound
		}
		return 0, database.TranslateError(err, nil)
	}

	return s.count(ctx, jokeID)
}

func (s *likeService) Unlike(ctx context.Context, identity authz.Identity, jokeID uint) (int64, error) {
	removed, err := s.repo.Delete(ctx, identity.ID, jokeID)
	if err != nil {
		return 0, database.TranslateError(err, nil)
	}
	if !removed {
		return 0, errNotLiked
	}

	return s.count(ctx, jokeID)
}

func (s *likeService) CheckLiked(ctx context.Context, identity authz.Identity, jokeID uint) (bool, error) {
	liked, err := s.repo.Exists(ctx, identity.ID, jokeID)
	if err != nil {
		return false, database.TranslateError(err, nil)
	}
	return liked, nil
}

func (s *likeService) TrackShare(ctx context.Context, jokeID uint) error {
	if err := s.requireJoke(ctx, jokeID); err != nil {
		return err
	}
	s.log.Info().Uint("joke_id", jokeID).Msg("joke shared")
	return nil
}

func (s *likeService) count(ctx context.Context, jokeID uint) (int64, error) {
	n, err := s.repo.CountByJoke(ctx, jokeID)
	if err != nil {
		return 0, database.TranslateError(err, nil)
	}
	return n, nil
}
