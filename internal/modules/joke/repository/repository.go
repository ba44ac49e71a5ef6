package repository

import (
	"context"
	"strings"
	"time"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/entity"
	"gorm.io/gorm"
)

// JokeRow is a joke joined with its author and read-time counts.
type JokeRow struct {
	ID            uint
	UserID        uint
	Title         string
	Content       string
	CreatedAt     time.Time
	Author        *string
	LikesCount    int64
	CommentsCount int64
}

type JokeRepository interface {
	List(ctx context.Context, sort string) ([]JokeRow, error)
	FindRowByID(ctx context.Context, id uint) (*JokeRow, error)
	FindRowsByIDs(ctx context.Context, ids []uint) ([]JokeRow, error)
	Search(ctx context.Context, query string, limit int) ([]JokeRow, error)
	FindByID(ctx context.Context, id uint) (*entity.Joke, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, joke *entity.Joke) error
	Update(ctx context.Context, joke *entity.Joke, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type jokeRepository struct {
	db *gorm.DB
}

func NewJokeRepository(db *gorm.DB) JokeRepository {
	return &jokeRepository{db: db}
}

const rowColumns = `jokes.id, jokes.user_id, jokes.title, jokes.content, jokes.created_at,
	users.username AS author,
	(SELECT COUNT(*) FROM likes WHERE likes.joke_id = jokes.id) AS likes_count,
	(SELECT COUNT(*) FROM comments WHERE comments.joke_id = jokes.id) AS comments_count`

func (r *jokeRepository) rows(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("jokes").
		Select(rowColumns).
		Joins("LEFT JOIN users ON users.id = jokes.user_id")
}

func (r *jokeRepository) List(ctx context.Context, sort string) ([]JokeRow, error) {
	query := r.rows(ctx)
	if sort == "trending" {
		query = query.Order("likes_count DESC").Order("jokes.created_at DESC").Order("jokes.id DESC")
	} else {
		query = query.Order("jokes.created_at DESC").Order("jokes.id DESC")
	}

	var rows []JokeRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *jokeRepository) FindRowByID(ctx context.Context, id uint) (*JokeRow, error) {
	var rows []JokeRow
	if err := r.rows(ctx).Where("jokes.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// FindRowsByIDs keeps the order of ids and skips ids that no longer exist.
func (r *jokeRepository) FindRowsByIDs(ctx context.Context, ids []uint) ([]JokeRow, error) {
	if len(ids) == 0 {
		return []JokeRow{}, nil
	}

	var rows []JokeRow
	if err := r.rows(ctx).Where("jokes.id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]JokeRow, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	ordered := make([]JokeRow, 0, len(rows))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			ordered = append(ordered, row)
		}
	}
	return ordered, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search is the database fallback used when no search index is configured.
func (r *jokeRepository) Search(ctx context.Context, query string, limit int) ([]JokeRow, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"

	var rows []JokeRow
	err := r.rows(ctx).
		Where(`LOWER(jokes.title) LIKE ? ESCAPE '\' OR LOWER(jokes.content) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("jokes.created_at DESC").
		Order("jokes.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *jokeRepository) FindByID(ctx context.Context, id uint) (*entity.Joke, error) {
	var joke entity.Joke
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&joke).Error; err != nil {
		return nil, err
	}
	return &joke, nil
}

func (r *jokeRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Joke{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *jokeRepository) Create(ctx context.Context, joke *entity.Joke) error {
	return r.db.WithContext(ctx).Create(joke).Error
}

func (r *jokeRepository) Update(ctx context.Context, joke *entity.Joke, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(joke).Updates(fields).Error
}

// Delete removes the joke with its comments and likes in one transaction.
func (r *jokeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("joke_id = ?", id).Delete(&entity.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("joke_id = ?", id).Delete(&entity.Comment{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&entity.Joke{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
