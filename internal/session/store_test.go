package session

import (
	"context"
	"testing"
	"time"

	"voiceai-web/internal/domain/user"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewStore(client, zap.NewNop(), time.Hour), mr
}

func testUser() *user.User {
	return &user.User{
		ID:        "u-1",
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "+1 555 000 0000",
		Role:      user.RoleUser,
	}
}

func TestHydrateEmptySession(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := store.Hydrate(ctx, store.NewSessionID())
	assert.False(t, sess.IsAuthenticated())
	assert.Empty(t, sess.Token)
	assert.Nil(t, sess.User)
}

func TestLoginHydrateRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	sid := store.NewSessionID()

	before := store.Login(ctx, sid, "tok-123", testUser())
	require.True(t, before.IsAuthenticated())

	// Simulated reload: a fresh hydrate must agree with the pre-reload state.
	after := store.Hydrate(ctx, sid)
	require.True(t, after.IsAuthenticated())
	assert.Equal(t, before.Token, after.Token)
	assert.Equal(t, before.User, after.User)
}

func TestHydrateCorruptUserClearsSession(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	sid := store.NewSessionID()

	store.Login(ctx, sid, "tok-123", testUser())
	require.NoError(t, mr.Set(store.userKey(sid), "{not json"))

	sess := store.Hydrate(ctx, sid)
	assert.False(t, sess.IsAuthenticated())

	// Defensive clear removed both persisted keys.
	assert.False(t, mr.Exists(store.tokenKey(sid)))
	assert.False(t, mr.Exists(store.userKey(sid)))
}

func TestTokenWithoutUserIsNotAuthenticated(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	sid := store.NewSessionID()

	require.NoError(t, mr.Set(store.tokenKey(sid), "orphan-token"))

	sess := store.Hydrate(ctx, sid)
	assert.False(t, sess.IsAuthenticated())
}

func TestLogoutIdempotent(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	sid := store.NewSessionID()

	store.Login(ctx, sid, "tok-123", testUser())
	store.Logout(ctx, sid)
	store.Logout(ctx, sid) // second call is a no-op

	assert.False(t, store.Hydrate(ctx, sid).IsAuthenticated())
	assert.False(t, mr.Exists(store.tokenKey(sid)))
	assert.False(t, mr.Exists(store.userKey(sid)))
}

func TestLoginSurvivesStorageFailure(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	sid := store.NewSessionID()

	mr.Close()

	// Best-effort persistence: the in-memory session still authenticates.
	sess := store.Login(ctx, sid, "tok-123", testUser())
	assert.True(t, sess.IsAuthenticated())
}

func TestRedirectTargetTakenOnce(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	sid := store.NewSessionID()

	store.SetRedirectTarget(ctx, sid, "/dashboard/files")

	assert.Equal(t, "/dashboard/files", store.TakeRedirectTarget(ctx, sid))
	assert.Empty(t, store.TakeRedirectTarget(ctx, sid))
}

func TestLogoutPreservesRedirectTarget(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	sid := store.NewSessionID()

	store.Login(ctx, sid, "tok-123", testUser())
	store.SetRedirectTarget(ctx, sid, "/dashboard/generate")
	store.Logout(ctx, sid)

	// Credentials are gone, but the attempted path survives the defensive
	// logout so the next login still lands where the user was headed.
	assert.False(t, mr.Exists(store.tokenKey(sid)))
	assert.False(t, mr.Exists(store.userKey(sid)))
	assert.Equal(t, "/dashboard/generate", store.TakeRedirectTarget(ctx, sid))
}

func TestCooldown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cd := NewCooldown(client, 60*time.Second)
	ctx := context.Background()

	assert.Zero(t, cd.Remaining(ctx, "sid"))

	require.NoError(t, cd.Start(ctx, "sid"))
	assert.Greater(t, cd.Remaining(ctx, "sid"), time.Duration(0))

	mr.FastForward(61 * time.Second)
	assert.Zero(t, cd.Remaining(ctx, "sid"))
}
