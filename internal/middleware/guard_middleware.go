// internal/middleware/guard_middleware.go
package middleware

import (
	"net/http"

	"voiceai-web/internal/guard"
	"voiceai-web/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GuardMiddleware enforces the per-layout access decision. One instance
// serves both layout groups.
type GuardMiddleware struct {
	store  *session.Store
	latch  *guard.Latch
	logger *zap.Logger
}

func NewGuardMiddleware(store *session.Store, latch *guard.Latch, logger *zap.Logger) *GuardMiddleware {
	return &GuardMiddleware{
		store:  store,
		latch:  latch,
		logger: logger,
	}
}

// Dashboard protects the authenticated pages. An unauthenticated request
// records the attempted path, clears the session defensively, and is sent
// to the login page.
func (m *GuardMiddleware) Dashboard() gin.HandlerFunc {
	return m.guard(guard.AreaDashboard)
}

// AuthPages sends already-authenticated requests away from the login,
// register, and password pages.
func (m *GuardMiddleware) AuthPages() gin.HandlerFunc {
	return m.guard(guard.AreaAuth)
}

func (m *GuardMiddleware) guard(area guard.Area) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		hydrated := m.latch.Fired() && sess != nil

		_, decision := guard.Decide(area, hydrated, sess.IsAuthenticated())
		switch decision {
		case guard.Wait:
			// Authentication state is not knowable yet: no protected
			// content, no redirect, only the placeholder.
			c.HTML(http.StatusOK, "loading.html", gin.H{})
			c.Abort()

		case guard.RedirectLogin:
			ctx := c.Request.Context()
			sid := SessionID(c)
			m.store.SetRedirectTarget(ctx, sid, c.Request.URL.Path)
			m.store.Logout(ctx, sid)
			m.logger.Info("unauthenticated request to protected page",
				zap.String("path", c.Request.URL.Path),
			)
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()

		case guard.RedirectDashboard:
			c.Redirect(http.StatusSeeOther, "/dashboard")
			c.Abort()

		default:
			c.Next()
		}
	}
}

// CurrentSession returns the hydrated session attached by Load.
func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(ctxKeySession); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}

// SessionID returns the browser session id attached by Load.
func SessionID(c *gin.Context) string {
	return c.GetString(ctxKeySessionID)
}
