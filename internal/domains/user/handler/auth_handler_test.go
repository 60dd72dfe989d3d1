package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bookstore-web/internal/domains/user/model"
	"bookstore-web/internal/shared/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	sessions map[string]*model.Session
	password string
}

func newFakeAuthService() *fakeAuthService {
	return &fakeAuthService{
		sessions: make(map[string]*model.Session),
		password: "correct horse",
	}
}

func (s *fakeAuthService) SignInWithPassword(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	if password != s.password {
		return nil, model.ErrInvalidCredentials
	}
	session := model.Session{
		ID:        uuid.NewString(),
		UserID:    uuid.New(),
		Email:     email,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	token := "token-" + session.ID
	s.sessions[token] = &session
	return &model.LoginResponse{Token: token, Session: session}, nil
}

func (s *fakeAuthService) SessionFromToken(ctx context.Context, token string) (*model.Session, error) {
	if session, ok := s.sessions[token]; ok {
		return session, nil
	}
	return nil, model.ErrNoSession
}

func (s *fakeAuthService) SignOut(ctx context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func newAuthRouter(svc *fakeAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewAuthHandler(svc)
	router := gin.New()
	router.POST("/auth/login", h.Login)
	router.GET("/auth/session", h.GetSession)
	router.POST("/auth/logout", h.Logout)

	admin := router.Group("/admin")
	admin.Use(middleware.AdminGuard(svc))
	admin.GET("/dashboard", h.Dashboard)

	return router
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		router := newAuthRouter(newFakeAuthService())

		body := `{"email": "admin@example.com", "password": "correct horse"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "token")
	})

	t.Run("wrong password is a 401", func(t *testing.T) {
		router := newAuthRouter(newFakeAuthService())

		body := `{"email": "admin@example.com", "password": "wrong"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed email is rejected before the service", func(t *testing.T) {
		router := newAuthRouter(newFakeAuthService())

		body := `{"email": "not-an-email", "password": "correct horse"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func login(t *testing.T, router *gin.Engine) string {
	t.Helper()

	body := `{"email": "admin@example.com", "password": "correct horse"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Pull the token out of the fake rather than parsing the body.
	start := strings.Index(w.Body.String(), "token-")
	require.GreaterOrEqual(t, start, 0)
	end := strings.IndexByte(w.Body.String()[start:], '"')
	return w.Body.String()[start : start+end]
}

func TestSessionLifecycle(t *testing.T) {
	svc := newFakeAuthService()
	router := newAuthRouter(svc)
	token := login(t, router)

	t.Run("session endpoint reports the signed-in identity", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "admin@example.com")
	})

	t.Run("no token is a 401, not a redirect", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/session", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("logout invalidates the token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/auth/session", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestDashboard(t *testing.T) {
	t.Run("signed in", func(t *testing.T) {
		svc := newFakeAuthService()
		router := newAuthRouter(svc)
		token := login(t, router)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "admin@example.com")
	})

	t.Run("signed out is redirected to login", func(t *testing.T) {
		router := newAuthRouter(newFakeAuthService())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})
}
