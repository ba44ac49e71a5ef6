package dto

import "time"

const (
	SortLatest   = "latest"
	SortTrending = "trending"
)

type CreateJokeRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// UpdateJokeRequest applies only the non-empty fields.
type UpdateJokeRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type ListJokesQuery struct {
	Sort string `form:"sort"`
}

type SearchJokesQuery struct {
	Q     string `form:"q"`
	Limit int    `form:"limit"`
}

type JokeResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	UserID    uint      `json:"user_id"`
	Likes     int64     `json:"likes"`
	Comments  int64     `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}
