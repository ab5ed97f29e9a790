// internal/session/store.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"voiceai-web/internal/domain/user"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Session is the in-memory view of one browser session. It is populated by
// Hydrate or Login and read through accessors only; nothing outside the
// Store touches the persisted keys.
type Session struct {
	ID    string
	Token string
	User  *user.User
}

// IsAuthenticated is derived state: true iff both token and user are present.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != "" && s.User != nil
}

// Store is the single source of truth for authentication state, durable
// across page loads. Per session id it owns three keys: the bearer token,
// the serialized user profile, and the short-lived pending redirect target.
type Store struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

func NewStore(client *redis.Client, logger *zap.Logger, ttl time.Duration) *Store {
	return &Store{
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

// NewSessionID mints an id for a fresh browser session.
func (s *Store) NewSessionID() string {
	return ulid.Make().String()
}

func (s *Store) tokenKey(sid string) string {
	return fmt.Sprintf("sess:%s:token", sid)
}

func (s *Store) userKey(sid string) string {
	return fmt.Sprintf("sess:%s:user", sid)
}

func (s *Store) redirectKey(sid string) string {
	return fmt.Sprintf("sess:%s:redirect", sid)
}

// Token reads the current bearer token straight from storage. Callers that
// dispatch backend requests use this instead of a cached copy, since the
// token can change after login without the caller being rebuilt.
func (s *Store) Token(ctx context.Context, sid string) string {
	token, err := s.client.Get(ctx, s.tokenKey(sid)).Result()
	if err != nil {
		return ""
	}
	return token
}

// Hydrate restores the session from storage. It never fails to the caller:
// a missing record yields an unauthenticated session, and a stored user
// record that does not parse is treated as corrupt state, cleared, and
// logged only.
func (s *Store) Hydrate(ctx context.Context, sid string) *Session {
	sess := &Session{ID: sid}

	token, err := s.client.Get(ctx, s.tokenKey(sid)).Result()
	if err == redis.Nil {
		return sess
	}
	if err != nil {
		s.logger.Warn("session hydrate: token read failed",
			zap.String("sid", sid),
			zap.Error(err),
		)
		return sess
	}

	raw, err := s.client.Get(ctx, s.userKey(sid)).Bytes()
	if err == redis.Nil {
		// Token without a user is never authenticated.
		return sess
	}
	if err != nil {
		s.logger.Warn("session hydrate: user read failed",
			zap.String("sid", sid),
			zap.Error(err),
		)
		return sess
	}

	var u user.User
	if err := json.Unmarshal(raw, &u); err != nil {
		// Corrupt persisted state self-heals by clearing both keys.
		s.logger.Error("session hydrate: corrupt user record, clearing session",
			zap.String("sid", sid),
			zap.Error(err),
		)
		s.clear(ctx, sid)
		return &Session{ID: sid}
	}

	sess.Token = token
	sess.User = &u
	return sess
}

// Login persists the token and user and returns the populated session.
// Persistence is best effort: a storage write failure is logged and the
// in-memory session is still returned authenticated.
func (s *Store) Login(ctx context.Context, sid, token string, u *user.User) *Session {
	raw, err := json.Marshal(u)
	if err != nil {
		s.logger.Error("session login: marshal user failed",
			zap.String("sid", sid),
			zap.Error(err),
		)
		return &Session{ID: sid, Token: token, User: u}
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.tokenKey(sid), token, s.ttl)
	pipe.Set(ctx, s.userKey(sid), raw, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Error("session login: persist failed",
			zap.String("sid", sid),
			zap.Error(err),
		)
	}

	return &Session{ID: sid, Token: token, User: u}
}

// SetUser replaces the cached user record, leaving the token untouched.
// Used after profile edits so the next hydration reflects them.
func (s *Store) SetUser(ctx context.Context, sid string, u *user.User) {
	raw, err := json.Marshal(u)
	if err != nil {
		s.logger.Error("session set user: marshal failed",
			zap.String("sid", sid),
			zap.Error(err),
		)
		return
	}
	if err := s.client.Set(ctx, s.userKey(sid), raw, s.ttl).Err(); err != nil {
		s.logger.Warn("session set user: persist failed",
			zap.String("sid", sid),
			zap.Error(err),
		)
	}
}

// Logout clears the persisted credentials for the session. It is idempotent;
// logging out an already-empty session is a no-op. The pending redirect
// target is NOT cleared: recording the attempted path and the defensive
// logout happen together on guarded routes, and the target must survive so
// the next login can honor it.
func (s *Store) Logout(ctx context.Context, sid string) {
	s.clear(ctx, sid)
}

func (s *Store) clear(ctx context.Context, sid string) {
	if err := s.client.Del(ctx, s.tokenKey(sid), s.userKey(sid)).Err(); err != nil {
		s.logger.Warn("session clear failed",
			zap.String("sid", sid),
			zap.Error(err),
		)
	}
}

// SetRedirectTarget records the path the user attempted before being sent to
// the login page. The key is session scoped and short lived.
func (s *Store) SetRedirectTarget(ctx context.Context, sid, path string) {
	if err := s.client.Set(ctx, s.redirectKey(sid), path, 30*time.Minute).Err(); err != nil {
		s.logger.Warn("session redirect target write failed",
			zap.String("sid", sid),
			zap.Error(err),
		)
	}
}

// TakeRedirectTarget returns the pending redirect target and clears it, so
// it is consumed at most once.
func (s *Store) TakeRedirectTarget(ctx context.Context, sid string) string {
	pipe := s.client.TxPipeline()
	get := pipe.Get(ctx, s.redirectKey(sid))
	pipe.Del(ctx, s.redirectKey(sid))
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return ""
	}
	path, err := get.Result()
	if err != nil {
		return ""
	}
	return path
}
