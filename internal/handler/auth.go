package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snackshop/snackshop-api/internal/config"
	"github.com/snackshop/snackshop-api/internal/dto"
	"github.com/snackshop/snackshop-api/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	session     config.SessionConfig
}

func NewAuthHandler(authService *service.AuthService, session config.SessionConfig) *AuthHandler {
	return &AuthHandler{authService: authService, session: session}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	if _, err := h.authService.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	token, ident, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.SetCookie(h.session.CookieName, token, int(h.session.TTL.Seconds()), "/", "", h.session.SecureCookie, true)
	c.JSON(http.StatusOK, dto.LoginResponse{Authenticated: true, IsAdmin: ident.IsAdmin})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(h.session.CookieName)
	if err == nil && token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
	}

	c.SetCookie(h.session.CookieName, "", -1, "/", "", h.session.SecureCookie, true)
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
