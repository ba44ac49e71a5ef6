package service

import (
	"context"
	"strings"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/authz"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/entity"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/comment/dto"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/comment/repository"
	jokeRepo "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/joke/repository"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/apperror"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/database"
)

var (
	errJokeNotFound    = apperror.NotFound("joke not found")
	errCommentNotFound = apperror.NotFound("comment not found")
)

type CommentService interface {
	ListComments(ctx context.Context, jokeID uint) ([]dto.CommentResponse, error)
	CreateComment(ctx context.Context, identity authz.Identity, jokeID uint, input dto.CreateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, identity authz.Identity, id uint) error
}

type commentService struct {
	repo  repository.CommentRepository
	jokes jokeRepo.JokeRepository
}

func NewCommentService(repo repository.CommentRepository, jokes jokeRepo.JokeRepository) CommentService {
	return &commentService{repo: repo, jokes: jokes}
}

func (s *commentService) ListComments(ctx context.Context, jokeID uint) ([]dto.CommentResponse, error) {
	rows, err := s.repo.ListByJoke(ctx, jokeID)
	if err != nil {
		return nil, database.TranslateError(err, nil)
	}

	res := make([]dto.CommentResponse, 0, len(rows))
	for _, row := range rows {
		author := entity.UnknownAuthor
		if row.Author != nil && *row.Author != "" {
			author = *row.Author
		}
		res = append(res, dto.CommentResponse{
			ID:        row.ID,
			Content:   row.Content,
			UserID:    row.UserID,
			JokeID:    row.JokeID,
			Author:    author,
			CreatedAt: row.CreatedAt,
		})
	}
	return res, nil
}

func (s *commentService) CreateComment(ctx context.Context, identity authz.Identity, jokeID uint, input dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, apperror.InvalidInput("content is required")
	}

	exists, err := s.jokes.Exists(ctx, jokeID)
	if err != nil {
		return nil, database.TranslateError(err, nil)
	}
	if !exists {
		return nil, errJokeNotFound
	}

	comment := &entity.Comment{
		UserID:  identity.ID,
		JokeID:  jokeID,
		Content: input.Content,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		// The joke may have been deleted since the existence check.
		return nil, database.TranslateError(err, errJokeNotFound)
	}

	return &dto.CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		UserID:    comment.UserID,
		JokeID:    comment.JokeID,
		Author:    identity.Username,
		CreatedAt: comment.CreatedAt,
	}, nil
}

func (s *commentService) DeleteComment(ctx context.Context, identity authz.Identity, id uint) error {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return database.TranslateError(err, errCommentNotFound)
	}
	if err := authz.RequireOwner(comment.UserID, identity); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return database.TranslateError(err, errCommentNotFound)
	}
	return nil
}
