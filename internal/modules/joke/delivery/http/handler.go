package handler

import (
	"net/http"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/middleware"
	jokeDto "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/joke/dto"
	joke "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/joke/service"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/apperror"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/response"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/validator"
	"github.com/gin-gonic/gin"
)

type JokeHandler struct {
	service joke.JokeService
}

func NewJokeHandler(service joke.JokeService) *JokeHandler {
	return &JokeHandler{service: service}
}

func (h *JokeHandler) ListJokes(c *gin.Context) {
	var query jokeDto.ListJokesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ResponseError(c, apperror.InvalidInput(validator.FormatValidationError(err)))
		return
	}

	jokes, err := h.service.ListJokes(c.Request.Context(), query.Sort)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, jokes)
}

func (h *JokeHandler) SearchJokes(c *gin.Context) {
	var query jokeDto.SearchJokesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ResponseError(c, apperror.InvalidInput("invalid search query"))
		return
	}

	jokes, err := h.service.SearchJokes(c.Request.Context(), query.Q, query.Limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, jokes)
}

func (h *JokeHandler) GetJoke(c *gin.Context) {
	jokeID, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.GetJoke(c.Request.Context(), jokeID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *JokeHandler) CreateJoke(c *gin.Context) {
	var req jokeDto.CreateJokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.InvalidInput(validator.FormatValidationError(err)))
		return
	}

	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.CreateJoke(c.Request.Context(), identity, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *JokeHandler) UpdateJoke(c *gin.Context) {
	jokeID, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req jokeDto.UpdateJokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.InvalidInput(validator.FormatValidationError(err)))
		return
	}

	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.UpdateJoke(c.Request.Context(), identity, jokeID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *JokeHandler) DeleteJoke(c *gin.Context) {
	jokeID, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeleteJoke(c.Request.Context(), identity, jokeID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "joke deleted successfully"})
}
