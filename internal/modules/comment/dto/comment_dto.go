package dto

import "time"

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	UserID    uint      `json:"user_id"`
	JokeID    uint      `json:"joke_id"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
