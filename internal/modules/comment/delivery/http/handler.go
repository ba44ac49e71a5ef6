package handler

import (
	"net/http"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/middleware"
	commentDto "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/comment/dto"
	comment "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/comment/service"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/apperror"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/response"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/validator"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	service comment.CommentService
}

func NewCommentHandler(service comment.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	jokeID, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	comments, err := h.service.ListComments(c.Request.Context(), jokeID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	jokeID, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req commentDto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, apperror.InvalidInput(validator.FormatValidationError(err)))
		return
	}

	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.CreateComment(c.Request.Context(), identity, jokeID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), identity, commentID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted successfully"})
}
