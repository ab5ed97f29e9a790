// internal/gateway/plans.go
package gateway

import (
	"context"
	"errors"
	"io"
	"net/url"

	"voiceai-web/internal/domain/plan"
	"voiceai-web/internal/domain/subscription"
	"voiceai-web/internal/pkg/xerrors"
)

// Plans lists the purchasable plans. Public: also used by the pricing page.
func (c *Client) Plans(ctx context.Context, sid string) ([]plan.Plan, error) {
	var out []plan.Plan
	if err := c.get(ctx, sid, "/plans", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Subscribe creates a manual-payment subscription for the plan. The result
// is pending until payment proof is reviewed.
func (c *Client) Subscribe(ctx context.Context, sid, planID string) (*subscription.SubscribeResponse, error) {
	var out subscription.SubscribeResponse
	err := c.post(ctx, sid, "/plans/subscribe", map[string]string{
		"planId":        planID,
		"paymentMethod": "manual",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadPaymentProof attaches the user's payment evidence to a pending
// subscription.
func (c *Client) UploadPaymentProof(ctx context.Context, sid, subscriptionID, filename string, file io.Reader) error {
	path := "/plans/subscription/" + url.PathEscape(subscriptionID) + "/payment-proof"
	return c.upload(ctx, sid, path, "paymentProof", filename, file, nil)
}

// Subscription fetches the current subscription. A backend 404 means the
// user has none, which is not an error here.
func (c *Client) Subscription(ctx context.Context, sid string) (*subscription.Subscription, error) {
	var out subscription.Subscription
	err := c.get(ctx, sid, "/plans/subscription/details", &out)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
