// internal/handlers/subscription/wizard.go
package subscription

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"voiceai-web/internal/domain/subscription"
	"voiceai-web/internal/pkg/xerrors"

	"github.com/redis/go-redis/v9"
)

const (
	wizardTTL = 30 * time.Minute

	// Manual payments are reviewed by a human; keep the bank details around
	// for as long as the review can plausibly take.
	paymentInfoTTL = 7 * 24 * time.Hour
)

// WizardState is the signup wizard's progress for one session. It lives in
// Redis so a refresh mid-wizard lands the user back on the step they were on.
type WizardState struct {
	Step          int    `json:"step"`
	PlanID        string `json:"planId"`
	ProofFilename string `json:"proofFilename"`
	Proof         []byte `json:"proof,omitempty"`
}

// WizardStore persists wizard progress keyed by session ID.
type WizardStore struct {
	client *redis.Client
}

func NewWizardStore(client *redis.Client) *WizardStore {
	return &WizardStore{client: client}
}

func wizardKey(sid string) string {
	return fmt.Sprintf("sess:%s:wizard", sid)
}

// Load returns the session's wizard state, or a fresh step-1 state when none
// is stored. Corrupt state is discarded rather than surfaced.
func (w *WizardStore) Load(ctx context.Context, sid string) (*WizardState, error) {
	raw, err := w.client.Get(ctx, wizardKey(sid)).Result()
	if err == redis.Nil {
		return &WizardState{Step: 1}, nil
	}
	if err != nil {
		return nil, xerrors.Wrap(err, "load wizard state")
	}
	var st WizardState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		_ = w.client.Del(ctx, wizardKey(sid)).Err()
		return &WizardState{Step: 1}, nil
	}
	if st.Step < 1 || st.Step > 3 {
		st.Step = 1
	}
	return &st, nil
}

// Save overwrites the session's wizard state.
func (w *WizardStore) Save(ctx context.Context, sid string, st *WizardState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return xerrors.Wrap(err, "encode wizard state")
	}
	if err := w.client.Set(ctx, wizardKey(sid), raw, wizardTTL).Err(); err != nil {
		return xerrors.Wrap(err, "save wizard state")
	}
	return nil
}

// Clear drops the session's wizard state.
func (w *WizardStore) Clear(ctx context.Context, sid string) error {
	if err := w.client.Del(ctx, wizardKey(sid)).Err(); err != nil {
		return xerrors.Wrap(err, "clear wizard state")
	}
	return nil
}

func paymentInfoKey(sid string) string {
	return fmt.Sprintf("sess:%s:payinfo", sid)
}

// SavePaymentInfo keeps the manual-payment instructions returned by the
// subscribe call so the pending view can keep showing them.
func (w *WizardStore) SavePaymentInfo(ctx context.Context, sid string, info *subscription.PaymentInstructions) error {
	raw, err := json.Marshal(info)
	if err != nil {
		return xerrors.Wrap(err, "encode payment info")
	}
	if err := w.client.Set(ctx, paymentInfoKey(sid), raw, paymentInfoTTL).Err(); err != nil {
		return xerrors.Wrap(err, "save payment info")
	}
	return nil
}

// PaymentInfo returns the stored instructions, or nil when there are none.
func (w *WizardStore) PaymentInfo(ctx context.Context, sid string) *subscription.PaymentInstructions {
	raw, err := w.client.Get(ctx, paymentInfoKey(sid)).Result()
	if err != nil {
		return nil
	}
	var info subscription.PaymentInstructions
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		_ = w.client.Del(ctx, paymentInfoKey(sid)).Err()
		return nil
	}
	return &info
}
