package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bhai/internal/auth"
	"bhai/internal/http/middleware"
	"bhai/internal/models"
)

type AuthHandler struct {
	Auth      *auth.Service
	JWTSecret string
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body", "error": err.Error()})
		return
	}
	role := models.UserRole(req.Role)
	if req.Role == "" {
		role = models.RolePatient
	}

	user, err := h.Auth.Register(c.Request.Context(), req.Name, req.Email, req.Password, role)
	if err != nil {
		writeAuthError(c, err)
		return
	}
	h.respondWithToken(c, http.StatusCreated, user)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body", "error": err.Error()})
		return
	}

	user, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(c, err)
		return
	}
	h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) Anonymous(c *gin.Context) {
	user, err := h.Auth.CreateAnonymous(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create anonymous user"})
		return
	}
	h.respondWithToken(c, http.StatusCreated, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.Auth.Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := h.Auth.UserByID(c.Request.Context(), middleware.MustUserID(c))
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "no session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user models.User) {
	token, err := middleware.IssueToken(h.JWTSecret, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to issue token"})
		return
	}
	c.JSON(status, gin.H{"user": user, "token": token})
}

func writeAuthError(c *gin.Context, err error) {
	var verr *auth.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "authentication failed"})
	}
}
