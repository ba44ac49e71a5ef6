package handler

import (
	"net/http"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/middleware"
	like "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/like/service"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/response"
	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	service like.LikeService
}

func NewLikeHandler(service like.LikeService) *LikeHandler {
	return &LikeHandler{service: service}
}

func (h *LikeHandler) Like(c *gin.Context) {
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

	likes, err := h.service.Like(c.Request.Context(), identity, jokeID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "joke liked", "likes": likes})
}

func (h *LikeHandler) Unlike(c *gin.Context) {
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

	likes, err := h.service.Unlike(c.Request.Context(), identity, jokeID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "joke unliked", "likes": likes})
}

func (h *LikeHandler) CheckLiked(c *gin.Context) {
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

	liked, err := h.service.CheckLiked(c.Request.Context(), identity, jokeID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

func (h *LikeHandler) Share(c *gin.Context) {
	jokeID, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.TrackShare(c.Request.Context(), jokeID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "share recorded"})
}
