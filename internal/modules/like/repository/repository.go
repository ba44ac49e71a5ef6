package repository

import (
	"context"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/entity"
	"gorm.io/gorm"
)

type LikeRepository interface {
	// Create fails with gorm.ErrDuplicatedKey when the pair already exists.
	Create(ctx context.Context, like *entity.Like) error
	// Delete reports whether a like was removed.
	Delete(ctx context.Context, userID, jokeID uint) (bool, error)
	Exists(ctx context.Context, userID, jokeID uint) (bool, error)
	CountByJoke(ctx context.Context, jokeID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, like *entity.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *likeRepository) Delete(ctx context.Context, userID, jokeID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND joke_id = ?", userID, jokeID).
		Delete(&entity.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, jokeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Like{}).
		Where("user_id = ? AND joke_id = ?", userID, jokeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) CountByJoke(ctx context.Context, jokeID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Like{}).
		Where("joke_id = ?", jokeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
