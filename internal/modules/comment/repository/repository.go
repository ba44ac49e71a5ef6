package repository

import (
	"context"
	"time"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/entity"
	"gorm.io/gorm"
)

type CommentRow struct {
	ID        uint
	Content   string
	UserID    uint
	JokeID    uint
	Author    *string
	CreatedAt time.Time
}

type CommentRepository interface {
	ListByJoke(ctx context.Context, jokeID uint) ([]CommentRow, error)
	FindByID(ctx context.Context, id uint) (*entity.Comment, error)
	Create(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) ListByJoke(ctx context.Context, jokeID uint) ([]CommentRow, error) {
	var rows []CommentRow
	err := r.db.WithContext(ctx).
		Table("comments").
		Select("comments.id, comments.content, comments.user_id, comments.joke_id, comments.created_at, users.username AS author").
		Joins("LEFT JOIN users ON users.id = comments.user_id").
		Where("comments.joke_id = ?", jokeID).
		Order("comments.created_at DESC").
		Order("comments.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *commentRepository) FindByID(ctx context.Context, id uint) (*entity.Comment, error) {
	var comment entity.Comment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
