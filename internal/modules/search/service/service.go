package service

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/entity"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/sanitizer"
	"github.com/meilisearch/meilisearch-go"
	"github.com/rs/zerolog"
)

const jokesIndex = "jokes"

// JokeIndexer keeps a full-text index of jokes.
type JokeIndexer interface {
	IndexJoke(joke *entity.Joke, author string) error
	DeleteJoke(id uint) error
	// SearchJokes returns matching joke ids, best match first.
	SearchJokes(query string, limit int64) ([]uint, error)
}

type meiliSearchService struct {
	client meilisearch.ServiceManager
	log    zerolog.Logger
}

type meiliJokeDoc struct {
	ID        string `json:"id"`
	JokeID    uint   `json:"joke_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	UserID    uint   `json:"user_id"`
	CreatedAt int64  `json:"created_at"`
}

// NewMeiliSearchService returns nil when host is empty; callers treat a nil
// indexer as "search disabled".
func NewMeiliSearchService(host, apiKey string, log zerolog.Logger) JokeIndexer {
	if host == "" {
		return nil
	}
	return newMeiliSearchService(meilisearch.New(host, meilisearch.WithAPIKey(apiKey)), log)
}

func newMeiliSearchService(client meilisearch.ServiceManager, log zerolog.Logger) *meiliSearchService {
	s := &meiliSearchService{client: client, log: log}
	s.initIndex()
	return s
}

func (s *meiliSearchService) initIndex() {
	searchable := []string{"title", "content", "author"}
	if _, err := s.client.Index(jokesIndex).UpdateSearchableAttributes(&searchable); err != nil {
		s.log.Warn().Err(err).Msg("failed to update jokes searchable attributes")
	}

	sortable := []string{"created_at"}
	if _, err := s.client.Index(jokesIndex).UpdateSortableAttributes(&sortable); err != nil {
		s.log.Warn().Err(err).Msg("failed to update jokes sortable attributes")
	}
}

func (s *meiliSearchService) IndexJoke(joke *entity.Joke, author string) error {
	doc := meiliJokeDoc{
		ID:        strconv.FormatUint(uint64(joke.ID), 10),
		JokeID:    joke.ID,
		Title:     sanitizer.Flatten(joke.Title),
		Content:   sanitizer.Flatten(joke.Content),
		Author:    author,
		UserID:    joke.UserID,
		CreatedAt: joke.CreatedAt.Unix(),
	}

	task, err := s.client.Index(jokesIndex).AddDocuments([]meiliJokeDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	s.log.Debug().Uint("joke_id", joke.ID).Int64("task_uid", task.TaskUID).Msg("joke queued for indexing")
	return nil
}

func (s *meiliSearchService) DeleteJoke(id uint) error {
	_, err := s.client.Index(jokesIndex).DeleteDocument(strconv.FormatUint(uint64(id), 10))
	return err
}

func (s *meiliSearchService) SearchJokes(query string, limit int64) ([]uint, error) {
	resp, err := s.client.Index(jokesIndex).Search(query, &meilisearch.SearchRequest{
		Limit:                limit,
		AttributesToRetrieve: []string{"joke_id"},
	})
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(resp.Hits)
	if err != nil {
		return nil, fmt.Errorf("encode hits: %w", err)
	}
	var hits []struct {
		JokeID uint `json:"joke_id"`
	}
	if err := json.Unmarshal(raw, &hits); err != nil {
		return nil, fmt.Errorf("decode hits: %w", err)
	}

	ids := make([]uint, 0, len(hits))
	for _, h := range hits {
		if h.JokeID != 0 {
			ids = append(ids, h.JokeID)
		}
	}
	return ids, nil
}

func strPtr(s string) *string {
	return &s
}
