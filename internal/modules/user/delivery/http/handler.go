package handler

import (
	"net/http"
	"time"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/middleware"
	sessionService "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/session/service"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/user/dto"
	userService "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/user/service"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/apperror"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/response"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/validator"
	"github.com/gin-gonic/gin"
)

// CookieConfig describes the session cookie handed to browsers.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type AuthHandler struct {
	users    userService.UserService
	sessions sessionService.SessionService
	cookie   CookieConfig
}

func NewAuthHandler(users userService.UserService, sessions sessionService.SessionService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		cookie:   cookie,
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var input dto.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, apperror.InvalidInput(validator.FormatValidationError(err)))
		return
	}

	identity, err := h.users.Signup(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, identity)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, apperror.InvalidInput(validator.FormatValidationError(err)))
		return
	}

	previous, _ := c.Cookie(h.cookie.Name)

	res, err := h.sessions.Login(c.Request.Context(), input.Email, input.Password, previous)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	maxAge := int(time.Until(res.ExpiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = int(h.cookie.TTL.Seconds())
	}
	h.setCookie(c, res.Cookie, maxAge)

	c.JSON(http.StatusOK, res.Identity)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	cookie, _ := c.Cookie(h.cookie.Name)

	if err := h.sessions.Logout(c.Request.Context(), cookie); err != nil {
		response.ResponseError(c, err)
		return
	}

	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

func (h *AuthHandler) Session(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	current, err := h.sessions.CurrentIdentity(c.Request.Context(), identity)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, current)
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}
