package service

import (
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/entity"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/joke/dto"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/joke/repository"
)

func mapToResponse(row repository.JokeRow) dto.JokeResponse {
	author := entity.UnknownAuthor
	if row.Author != nil && *row.Author != "" {
		author = *row.Author
	}

	return dto.JokeResponse{
		ID:        row.ID,
		Title:     row.Title,
		Content:   row.Content,
		Author:    author,
		UserID:    row.UserID,
		Likes:     row.LikesCount,
		Comments:  row.CommentsCount,
		CreatedAt: row.CreatedAt,
	}
}

func mapRows(rows []repository.JokeRow) []dto.JokeResponse {
	res := make([]dto.JokeResponse, 0, len(rows))
	for _, row := range rows {
		res = append(res, mapToResponse(row))
	}
	return res
}

func normalizeSort(sort string) string {
	if sort == dto.SortTrending {
		return dto.SortTrending
	}
	return dto.SortLatest
}
