package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/entity"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// redisSession mirrors entity.Session; the entity hides its id from JSON.
type redisSession struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type redisSessionRepository struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisSessionRepository stores each session under its own key and lets
// Redis expire it.
func NewRedisSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessionRepository{client: client, now: time.Now}
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func (r *redisSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = r.now()
	}
	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", session.ID)
	}

	payload, err := json.Marshal(redisSession{
		ID:        session.ID,
		UserID:    session.UserID,
		Email:     session.Email,
		Username:  session.Username,
		Role:      session.Role,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	})
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKey(session.ID), payload, ttl).Err()
}

func (r *redisSessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	payload, err := r.client.Get(ctx, redisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var stored redisSession
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &entity.Session{
		ID:        stored.ID,
		UserID:    stored.UserID,
		Email:     stored.Email,
		Username:  stored.Username,
		Role:      stored.Role,
		ExpiresAt: stored.ExpiresAt,
		CreatedAt: stored.CreatedAt,
	}, nil
}

func (r *redisSessionRepository) DeleteByID(ctx context.Context, id string) error {
	return r.client.Del(ctx, redisKey(id)).Err()
}

// DeleteExpired is a no-op: keys carry their own TTL.
func (r *redisSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
