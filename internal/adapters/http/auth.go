package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Rishabh705/pixel-pals-backend/internal/auth"
	"github.com/Rishabh705/pixel-pals-backend/internal/domain"
	"github.com/Rishabh705/pixel-pals-backend/internal/store"
)

const refreshCookie = "jwt"

type AuthHandlers struct {
	Users  *store.Users
	Tokens *auth.Tokens
	// CookieMaxAge is the refresh cookie lifetime in seconds.
	CookieMaxAge int
	Secure       bool
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a user with a bcrypt-hashed password.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}
	if err := domain.ValidateUsername(req.Username); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	user, err := domain.NewUser(req.Username, hashed)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := h.Users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			c.JSON(http.StatusConflict, gin.H{"message": "User already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "New user with " + req.Username + " created!"})
}

// Login verifies credentials and issues the access/refresh pair; the refresh
// token is persisted on the user and set as an httpOnly cookie.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	user, err := h.Users.ByUsername(c.Request.Context(), req.Username)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No such user exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid Credentials"})
		return
	}

	accessToken, err := h.Tokens.IssueAccess(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	refreshToken, err := h.Tokens.IssueRefresh(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if err := h.Users.SetRefreshToken(c.Request.Context(), user.ID, refreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(refreshCookie, refreshToken, h.CookieMaxAge, "/", "", h.Secure, true)
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Authenticated",
		"accessToken": accessToken,
		"user":        user.AsContact(),
	})
}

// Logout clears the stored refresh token and the cookie. Always 204, even
// when there was nothing to clear.
func (h *AuthHandlers) Logout(c *gin.Context) {
	token, err := c.Cookie(refreshCookie)
	if err != nil || token == "" {
		c.Status(http.StatusNoContent)
		return
	}
	user, err := h.Users.ByRefreshToken(c.Request.Context(), token)
	if err == nil {
		if err := h.Users.SetRefreshToken(c.Request.Context(), user.ID, ""); err != nil {
			log.Error().Err(err).Str("module", "http.auth").Msg("clear refresh token")
		}
	}
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(refreshCookie, "", -1, "/", "", h.Secure, true)
	c.Status(http.StatusNoContent)
}

// Refresh rotates the access token from the refresh cookie.
func (h *AuthHandlers) Refresh(c *gin.Context) {
	token, err := c.Cookie(refreshCookie)
	if err != nil || token == "" {
		c.Status(http.StatusUnauthorized)
		return
	}

	user, err := h.Users.ByRefreshToken(c.Request.Context(), token)
	if errors.Is(err, store.ErrNotFound) {
		c.Status(http.StatusForbidden)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	username, err := h.Tokens.VerifyRefresh(token)
	if err != nil || username != user.Username {
		c.Status(http.StatusForbidden)
		return
	}

	accessToken, err := h.Tokens.IssueAccess(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}
