// internal/handlers/subscription/subscription_handler_test.go
package subscription

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"voiceai-web/internal/domain/subscription"
	"voiceai-web/internal/domain/user"
	"voiceai-web/internal/gateway"
	"voiceai-web/internal/session"
	"voiceai-web/internal/view"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type confirmFixture struct {
	router *gin.Engine
	store  *WizardStore
	client *redis.Client
	calls  *[]string
}

// newConfirmFixture wires a real handler against a fake backend that records
// which API routes it was called on, in order.
func newConfirmFixture(t *testing.T, subscribeStatus int) *confirmFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	logger := zap.NewNop()
	sessions := session.NewStore(rdb, logger, time.Hour)
	sessions.Login(context.Background(), "sid-1", "tok-1", &user.User{ID: "u1", Email: "a@b.co"})

	calls := &[]string{}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/plans/subscribe":
			*calls = append(*calls, "subscribe")
			w.WriteHeader(subscribeStatus)
			if subscribeStatus >= 400 {
				json.NewEncoder(w).Encode(map[string]any{
					"success": false, "error": "Plan is not available",
				})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data": map[string]any{
					"subscription": map[string]any{"_id": "sub-9", "status": "pending"},
					"paymentInstructions": map[string]any{
						"amount":   9.99,
						"currency": "USD",
						"bankDetails": map[string]any{
							"accountName":   "VoiceAI Ltd",
							"accountNumber": "12345678",
							"bankName":      "First Example Bank",
						},
						"instructions":   []string{"Include your email in the transfer reference"},
						"subscriptionId": "sub-9",
					},
				},
			})
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/payment-proof"):
			*calls = append(*calls, "proof")
			json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{}})
		case r.URL.Path == "/plans/subscription/details":
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "No subscription"})
		case r.URL.Path == "/plans":
			json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{
				map[string]any{"_id": "plan-1", "name": "Starter"},
			}})
		default:
			t.Fatalf("unexpected backend call %s %s", r.Method, r.URL.Path)
		}
	}))
	t.Cleanup(backend.Close)

	gw := gateway.New(backend.URL, 5*time.Second, sessions, logger)
	wizard := NewWizardStore(rdb)
	handler := NewSubscriptionHandler(gw, wizard, logger)

	router := gin.New()
	router.SetHTMLTemplate(view.Templates())
	router.Use(func(c *gin.Context) {
		c.Set("session_id", "sid-1")
	})
	router.POST("/dashboard/subscription/confirm", handler.Confirm)

	return &confirmFixture{router: router, store: wizard, client: rdb, calls: calls}
}

func seedWizard(t *testing.T, f *confirmFixture, st *WizardState) {
	t.Helper()
	require.NoError(t, f.store.Save(context.Background(), "sid-1", st))
}

func TestConfirmSubscribesThenUploadsProofInOrder(t *testing.T) {
	f := newConfirmFixture(t, http.StatusOK)
	seedWizard(t, f, &WizardState{
		Step:          3,
		PlanID:        "plan-1",
		ProofFilename: "receipt.pdf",
		Proof:         []byte("fake-pdf"),
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/dashboard/subscription/confirm", nil)
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, []string{"subscribe", "proof"}, *f.calls)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/subscription", rec.Header().Get("Location"))

	st, err := f.store.Load(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.Equal(t, 1, st.Step, "wizard state cleared after success")
	assert.Empty(t, st.PlanID)

	// The bank details from the subscribe response are kept for the
	// pending view.
	info := f.store.PaymentInfo(context.Background(), "sid-1")
	require.NotNil(t, info)
	assert.Equal(t, "First Example Bank", info.BankDetails.BankName)
	assert.Equal(t, 9.99, info.Amount)
}

func TestConfirmStopsWhenSubscribeFails(t *testing.T) {
	f := newConfirmFixture(t, http.StatusBadRequest)
	seedWizard(t, f, &WizardState{
		Step:          3,
		PlanID:        "plan-1",
		ProofFilename: "receipt.pdf",
		Proof:         []byte("fake-pdf"),
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/dashboard/subscription/confirm", nil)
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, []string{"subscribe"}, *f.calls, "proof upload must not run after a failed subscribe")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Plan is not available")

	st, err := f.store.Load(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.Equal(t, 3, st.Step, "wizard state survives a failed confirm")
}

func TestConfirmWithoutProofRedirectsBack(t *testing.T) {
	f := newConfirmFixture(t, http.StatusOK)
	seedWizard(t, f, &WizardState{Step: 2, PlanID: "plan-1"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/dashboard/subscription/confirm", nil)
	f.router.ServeHTTP(rec, req)

	assert.Empty(t, *f.calls)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestPendingViewShowsPaymentInstructions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	logger := zap.NewNop()
	sessions := session.NewStore(rdb, logger, time.Hour)
	sessions.Login(context.Background(), "sid-1", "tok-1", &user.User{ID: "u1", Email: "a@b.co"})

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/plans/subscription/details", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"_id":    "sub-9",
				"status": "pending",
				"plan":   map[string]any{"_id": "plan-1", "name": "Starter"},
			},
		})
	}))
	t.Cleanup(backend.Close)

	gw := gateway.New(backend.URL, 5*time.Second, sessions, logger)
	wizard := NewWizardStore(rdb)
	require.NoError(t, wizard.SavePaymentInfo(context.Background(), "sid-1", &subscription.PaymentInstructions{
		Amount:   9.99,
		Currency: "USD",
		BankDetails: subscription.BankDetails{
			AccountName:   "VoiceAI Ltd",
			AccountNumber: "12345678",
			BankName:      "First Example Bank",
		},
		Instructions:   []string{"Include your email in the transfer reference"},
		SubscriptionID: "sub-9",
	}))
	handler := NewSubscriptionHandler(gw, wizard, logger)

	router := gin.New()
	router.SetHTMLTemplate(view.Templates())
	router.Use(func(c *gin.Context) {
		c.Set("session_id", "sid-1")
	})
	router.GET("/dashboard/subscription", handler.Show)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/subscription", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "pending review")
	assert.Contains(t, body, "First Example Bank")
	assert.Contains(t, body, "12345678")
	assert.Contains(t, body, "Include your email in the transfer reference")
}

func TestWizardStateRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	w := NewWizardStore(rdb)
	ctx := context.Background()

	st, err := w.Load(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, 1, st.Step)

	require.NoError(t, w.Save(ctx, "s1", &WizardState{Step: 2, PlanID: "p1"}))
	st, err = w.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, st.Step)
	assert.Equal(t, "p1", st.PlanID)

	mr.Set("sess:s1:wizard", "{not json")
	st, err = w.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, st.Step, "corrupt wizard state resets to step one")
}
