package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/entity"
	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository is a durable keyed store of sessions. Create must not
// return before the record is persisted; DeleteByID is idempotent.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var sessions []entity.Session
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, ErrSessionNotFound
	}
	return &sessions[0], nil
}

func (r *sessionRepository) DeleteByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.Session{}).Error
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&entity.Session{})
	return result.RowsAffected, result.Error
}
