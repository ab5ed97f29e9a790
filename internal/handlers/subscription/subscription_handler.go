// internal/handlers/subscription/subscription_handler.go
package subscription

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"voiceai-web/internal/domain/plan"
	"voiceai-web/internal/domain/subscription"
	"voiceai-web/internal/gateway"
	"voiceai-web/internal/middleware"
	"voiceai-web/internal/pkg/xerrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxProofSize caps the payment proof upload at 10 MB.
const maxProofSize = 10 << 20

type SubscriptionHandler struct {
	gw     *gateway.Client
	wizard *WizardStore
	logger *zap.Logger
}

func NewSubscriptionHandler(gw *gateway.Client, wizard *WizardStore, logger *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{gw: gw, wizard: wizard, logger: logger}
}

// Show renders the subscription page: the current subscription when one
// exists, otherwise the signup wizard at whatever step the session left off.
func (h *SubscriptionHandler) Show(c *gin.Context) {
	h.render(c, "")
}

// Select records the chosen plan and moves the wizard to the proof step.
func (h *SubscriptionHandler) Select(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	planID := strings.TrimSpace(c.PostForm("planId"))
	if planID == "" {
		h.render(c, "Please choose a plan.")
		return
	}

	st := &WizardState{Step: 2, PlanID: planID}
	if err := h.wizard.Save(ctx, sid, st); err != nil {
		h.logger.Error("save wizard state failed", zap.Error(err))
		h.render(c, "Something went wrong. Please try again.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard/subscription")
}

// UploadProof stores the payment evidence and moves to the review step. The
// file is held in the wizard state until the user confirms; nothing is sent
// to the API yet.
func (h *SubscriptionHandler) UploadProof(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	st, err := h.wizard.Load(ctx, sid)
	if err != nil || st.PlanID == "" {
		c.Redirect(http.StatusSeeOther, "/dashboard/subscription")
		return
	}

	file, header, err := c.Request.FormFile("paymentProof")
	if err != nil {
		h.render(c, "Please attach your payment proof.")
		return
	}
	defer file.Close()

	if header.Size > maxProofSize {
		h.render(c, "Payment proof must be 10MB or smaller.")
		return
	}

	proof, err := io.ReadAll(io.LimitReader(file, maxProofSize))
	if err != nil {
		h.logger.Warn("read payment proof failed", zap.Error(err))
		h.render(c, "Could not read the uploaded file. Please try again.")
		return
	}

	st.Step = 3
	st.ProofFilename = header.Filename
	st.Proof = proof
	if err := h.wizard.Save(ctx, sid, st); err != nil {
		h.logger.Error("save wizard state failed", zap.Error(err))
		h.render(c, "Something went wrong. Please try again.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard/subscription")
}

// Back steps the wizard backwards. Leaving the proof step discards the plan
// choice; leaving review keeps it but drops the uploaded file.
func (h *SubscriptionHandler) Back(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	st, err := h.wizard.Load(ctx, sid)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/dashboard/subscription")
		return
	}

	switch st.Step {
	case 3:
		st.Step = 2
		st.ProofFilename = ""
		st.Proof = nil
		if err := h.wizard.Save(ctx, sid, st); err != nil {
			h.logger.Error("save wizard state failed", zap.Error(err))
		}
	default:
		if err := h.wizard.Clear(ctx, sid); err != nil {
			h.logger.Error("clear wizard state failed", zap.Error(err))
		}
	}
	c.Redirect(http.StatusSeeOther, "/dashboard/subscription")
}

// Confirm finalizes the wizard: it creates the subscription and then uploads
// the stored payment proof against it, in that order. Only when both calls
// succeed is the wizard state cleared and the pending view shown.
func (h *SubscriptionHandler) Confirm(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	st, err := h.wizard.Load(ctx, sid)
	if err != nil || st.PlanID == "" || len(st.Proof) == 0 {
		c.Redirect(http.StatusSeeOther, "/dashboard/subscription")
		return
	}

	created, err := h.gw.Subscribe(ctx, sid, st.PlanID)
	if err != nil {
		if errors.Is(err, xerrors.ErrUnauthorized) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		h.render(c, bannerMessage(err, "Could not create your subscription. Please try again."))
		return
	}

	err = h.gw.UploadPaymentProof(ctx, sid, created.Subscription.ID,
		st.ProofFilename, bytes.NewReader(st.Proof))
	if err != nil {
		if errors.Is(err, xerrors.ErrUnauthorized) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		h.logger.Warn("upload payment proof failed",
			zap.String("subscription_id", created.Subscription.ID),
			zap.Error(err),
		)
		h.render(c, bannerMessage(err, "Subscription created, but uploading your payment proof failed. Please try again."))
		return
	}

	if created.PaymentInstructions != nil {
		if err := h.wizard.SavePaymentInfo(ctx, sid, created.PaymentInstructions); err != nil {
			h.logger.Warn("save payment info failed", zap.Error(err))
		}
	}
	if err := h.wizard.Clear(ctx, sid); err != nil {
		h.logger.Error("clear wizard state failed", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/dashboard/subscription")
}

func (h *SubscriptionHandler) render(c *gin.Context, banner string) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	sub, err := h.gw.Subscription(ctx, sid)
	if err != nil {
		if errors.Is(err, xerrors.ErrUnauthorized) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		h.logger.Warn("fetch subscription failed", zap.Error(err))
	}
	if sub != nil {
		data := gin.H{
			"Subscription": sub,
			"Error":        banner,
		}
		if sub.Status == subscription.StatusPending {
			data["Instructions"] = h.wizard.PaymentInfo(ctx, sid)
		}
		c.HTML(http.StatusOK, "subscription.html", data)
		return
	}

	st, err := h.wizard.Load(ctx, sid)
	if err != nil {
		h.logger.Error("load wizard state failed", zap.Error(err))
		st = &WizardState{Step: 1}
	}

	plans, err := h.gw.Plans(ctx, sid)
	if err != nil {
		if errors.Is(err, xerrors.ErrUnauthorized) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		h.logger.Warn("list plans failed", zap.Error(err))
		if banner == "" {
			banner = "Could not load plans. Please try again."
		}
	}

	selected := findPlan(plans, st.PlanID)
	if st.Step > 1 && selected == nil {
		// The chosen plan is no longer on offer; start over.
		st = &WizardState{Step: 1}
	}

	c.HTML(http.StatusOK, "subscription.html", gin.H{
		"Step":          st.Step,
		"Plans":         plans,
		"SelectedPlan":  selected,
		"ProofFilename": st.ProofFilename,
		"Error":         banner,
	})
}

func findPlan(plans []plan.Plan, id string) *plan.Plan {
	for i := range plans {
		if plans[i].ID == id {
			return &plans[i]
		}
	}
	return nil
}

func bannerMessage(err error, fallback string) string {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
