// internal/middleware/session_middleware.go
package middleware

import (
	"net/http"

	"voiceai-web/internal/guard"
	"voiceai-web/internal/pkg/cookie"
	"voiceai-web/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ctxKeySession   = "session"
	ctxKeySessionID = "session_id"
)

// SessionMiddleware attaches the hydrated session to every request. Pages
// never read the session cookie or storage themselves; they go through the
// context accessors below.
type SessionMiddleware struct {
	store  *session.Store
	codec  *cookie.Codec
	latch  *guard.Latch
	logger *zap.Logger
}

func NewSessionMiddleware(store *session.Store, codec *cookie.Codec, latch *guard.Latch, logger *zap.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		store:  store,
		codec:  codec,
		latch:  latch,
		logger: logger,
	}
}

// Load resolves the browser's session id (minting a fresh signed cookie when
// absent or invalid) and hydrates the session before any guard decision runs.
func (m *SessionMiddleware) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		var sid string
		if raw, err := c.Cookie(m.codec.Name()); err == nil {
			if decoded, err := m.codec.Decode(raw); err == nil {
				sid = decoded
			} else {
				m.logger.Debug("invalid session cookie, minting new session", zap.Error(err))
			}
		}

		if sid == "" {
			sid = m.store.NewSessionID()
			if ck, err := m.codec.Issue(sid); err == nil {
				http.SetCookie(c.Writer, ck)
			} else {
				m.logger.Error("failed to issue session cookie", zap.Error(err))
			}
		}

		sess := m.store.Hydrate(c.Request.Context(), sid)
		m.latch.Fire()

		c.Set(ctxKeySession, sess)
		c.Set(ctxKeySessionID, sid)
		c.Next()
	}
}
