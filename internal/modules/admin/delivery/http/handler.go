package handler

import (
	"net/http"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/admin/dto"
	userService "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/user/service"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/response"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	userService userService.UserService
}

func NewAdminHandler(userService userService.UserService) *AdminHandler {
	return &AdminHandler{
		userService: userService,
	}
}

func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserListResponse{Users: users, Total: len(users)})
}
