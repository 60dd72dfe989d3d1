package handler

import (
	"errors"
	"net/http"

	"bookstore-web/internal/domains/user/model"
	"bookstore-web/internal/domains/user/service"
	"bookstore-web/internal/shared/middleware"
	"bookstore-web/internal/shared/response"
	"bookstore-web/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthHandler - HTTP layer for admin authentication
type AuthHandler struct {
	service service.AuthServiceInterface
}

// NewAuthHandler - Constructor with DI
func NewAuthHandler(svc service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", "Validation failed", err)
		return
	}

	result, err := h.service.SignInWithPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid email or password")
			return
		}
		logger.Error("Login failed", err)
		response.InternalServerError(c, "Failed to sign in")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetSession handles GET /auth/session. It reports the current session
// without redirecting so the storefront can probe auth state.
func (h *AuthHandler) GetSession(c *gin.Context) {
	token := middleware.TokenFromRequest(c)

	session, err := h.service.SessionFromToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, model.ErrNoSession) {
			response.Unauthorized(c, "No active session")
			return
		}
		logger.Error("Session lookup failed", err)
		response.InternalServerError(c, "Failed to load session")
		return
	}

	response.Success(c, http.StatusOK, session)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.TokenFromRequest(c)

	if err := h.service.SignOut(c.Request.Context(), token); err != nil {
		logger.Error("Logout failed", err)
		response.InternalServerError(c, "Failed to sign out")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Signed out"})
}

// Dashboard handles GET /admin/dashboard. The route already sits behind
// the admin guard, but the page re-checks the session itself so a guard
// misconfiguration can never render the dashboard to a signed-out user.
func (h *AuthHandler) Dashboard(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		token := middleware.TokenFromRequest(c)
		resolved, err := h.service.SessionFromToken(c.Request.Context(), token)
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		session = resolved
	}

	response.Success(c, http.StatusOK, gin.H{
		"email": session.Email,
	})
}
