package middleware

import (
	"context"
	"net/http"
	"strings"

	"bookstore-web/internal/domains/user/model"

	"github.com/gin-gonic/gin"
)

// SessionKey is the context key the guard stores the resolved session under.
const SessionKey = "admin_session"

// SessionVerifier resolves a raw token to an active admin session.
type SessionVerifier interface {
	SessionFromToken(ctx context.Context, token string) (*model.Session, error)
}

// TokenFromRequest pulls the session token from the Authorization header,
// falling back to the session_token cookie for browser navigation.
func TokenFromRequest(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	cookie, err := c.Cookie("session_token")
	if err != nil {
		return ""
	}
	return cookie
}

// AdminGuard - Blocks unauthenticated requests to admin routes
//
// Requests without an active session are redirected to the login page
// before any admin handler runs. The resolved session is stored on the
// context for handlers that need the signed-in identity.
func AdminGuard(verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)

		session, err := verifier.SessionFromToken(c.Request.Context(), token)
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}

// SessionFromContext returns the session stored by AdminGuard, if any.
func SessionFromContext(c *gin.Context) (*model.Session, bool) {
	value, exists := c.Get(SessionKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*model.Session)
	return session, ok
}
