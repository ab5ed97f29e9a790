package gateway

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"voiceai-web/internal/domain/user"
	"voiceai-web/internal/pkg/xerrors"
	"voiceai-web/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, backend http.Handler) (*Client, *session.Store, string) {
	t.Helper()

	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rc.Close() })

	store := session.NewStore(rc, zap.NewNop(), time.Hour)
	sid := store.NewSessionID()

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	return New(srv.URL, 5*time.Second, store, zap.NewNop()), store, sid
}

func testUser() *user.User {
	return &user.User{ID: "u-1", FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Role: user.RoleUser}
}

func TestBearerTokenReadFreshPerDispatch(t *testing.T) {
	var seen []string
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true,"data":{"charactersUsed":1}}`))
	})

	client, store, sid := newTestClient(t, backend)
	ctx := context.Background()

	store.Login(ctx, sid, "token-one", testUser())
	_, err := client.Usage(ctx, sid)
	require.NoError(t, err)

	// Token rotates without the client being rebuilt.
	store.Login(ctx, sid, "token-two", testUser())
	_, err = client.Usage(ctx, sid)
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer token-one", "Bearer token-two"}, seen)
}

func TestUnauthorizedClearsSession(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"token expired"}`))
	})

	client, store, sid := newTestClient(t, backend)
	ctx := context.Background()

	store.Login(ctx, sid, "stale-token", testUser())

	_, err := client.Usage(ctx, sid)
	require.Error(t, err)
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)

	// Both persisted credential keys are gone regardless of which call
	// triggered the 401.
	assert.False(t, store.Hydrate(ctx, sid).IsAuthenticated())
	assert.Empty(t, store.Token(ctx, sid))
}

func TestWrappedEnvelopeUnwrapped(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"token":"tok","user":{"_id":"u-1","firstName":"Jane","lastName":"Doe","email":"jane@example.com","role":"user"}}}`))
	})

	client, _, sid := newTestClient(t, backend)

	res, err := client.Login(context.Background(), sid, "jane@example.com", "Abcdef12")
	require.NoError(t, err)
	assert.Equal(t, "tok", res.Token)
	assert.Equal(t, "u-1", res.User.ID)
}

func TestDirectPayloadParsed(t *testing.T) {
	// Some routes answer with the payload at the top level instead of the
	// wrapped convention; both are normalized at the boundary.
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"v1","name":"Amy","languageCode":"en-US","gender":"female","engine":"neural"}]`))
	})

	client, _, sid := newTestClient(t, backend)

	voices, err := client.Voices(context.Background(), sid)
	require.NoError(t, err)
	require.Len(t, voices, 1)
	assert.Equal(t, "Amy", voices[0].Name)
}

func TestBusinessErrorCarriesServerMessage(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"invalid credentials"}`))
	})

	client, _, sid := newTestClient(t, backend)

	_, err := client.Login(context.Background(), sid, "jane@example.com", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "invalid credentials", apiErr.Message)
}

func TestErrorWithoutMessageFallsBack(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	client, _, sid := newTestClient(t, backend)

	_, err := client.Usage(context.Background(), sid)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, genericErrMsg, apiErr.Message)
}

func TestSubscriptionNotFoundMeansNone(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"no subscription"}`))
	})

	client, _, sid := newTestClient(t, backend)

	sub, err := client.Subscription(context.Background(), sid)
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestSuccessFalseOn2xxNormalized(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"quota exceeded"}`))
	})

	client, _, sid := newTestClient(t, backend)

	_, err := client.Usage(context.Background(), sid)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "quota exceeded", apiErr.Message)
}

func TestUploadPaymentProofMultipart(t *testing.T) {
	var gotField, gotFilename, gotAuth string
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		file, header, err := r.FormFile("paymentProof")
		if err == nil {
			gotField = "paymentProof"
			gotFilename = header.Filename
			file.Close()
		}
		w.Write([]byte(`{"success":true}`))
	})

	client, store, sid := newTestClient(t, backend)
	ctx := context.Background()
	store.Login(ctx, sid, "tok", testUser())

	err := client.UploadPaymentProof(ctx, sid, "sub-1", "receipt.png", bytesReader("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, "paymentProof", gotField)
	assert.Equal(t, "receipt.png", gotFilename)
	assert.Equal(t, "Bearer tok", gotAuth)
}

func bytesReader(s string) io.Reader {
	return strings.NewReader(s)
}
