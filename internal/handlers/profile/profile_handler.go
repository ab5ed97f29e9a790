// internal/handlers/profile/profile_handler.go
package profile

import (
	"errors"
	"net/http"
	"strings"

	"voiceai-web/internal/domain/auth"
	"voiceai-web/internal/gateway"
	"voiceai-web/internal/middleware"
	"voiceai-web/internal/pkg/xerrors"
	"voiceai-web/internal/session"
	"voiceai-web/internal/validate"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	gw     *gateway.Client
	store  *session.Store
	logger *zap.Logger
}

func NewProfileHandler(gw *gateway.Client, store *session.Store, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{gw: gw, store: store, logger: logger}
}

// Show renders the profile page prefilled from the session.
func (h *ProfileHandler) Show(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	c.HTML(http.StatusOK, "profile.html", gin.H{"User": sess.User})
}

// Update saves name and email changes, then refreshes the cached user so the
// rest of the dashboard shows the new values immediately.
func (h *ProfileHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)
	sess := middleware.CurrentSession(c)

	var form auth.UpdateProfileForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Debug("bind profile form failed", zap.Error(err))
	}
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.Email = strings.TrimSpace(form.Email)

	fields := validate.Errors{}
	if form.FirstName == "" {
		fields["firstName"] = "First name is required"
	}
	if form.LastName == "" {
		fields["lastName"] = "Last name is required"
	}
	if !validate.Email(form.Email) {
		fields["email"] = "Please enter a valid email address"
	}
	if !fields.OK() {
		c.HTML(http.StatusOK, "profile.html", gin.H{
			"User":   sess.User,
			"Fields": fields,
		})
		return
	}

	if err := h.gw.UpdateProfile(ctx, sid, &form); err != nil {
		if errors.Is(err, xerrors.ErrUnauthorized) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		c.HTML(http.StatusOK, "profile.html", gin.H{
			"User":  sess.User,
			"Error": bannerMessage(err, "Could not update your profile. Please try again."),
		})
		return
	}

	updated := *sess.User
	updated.FirstName = form.FirstName
	updated.LastName = form.LastName
	updated.Email = form.Email
	h.store.SetUser(ctx, sid, &updated)

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"User":    &updated,
		"Success": "Profile updated successfully.",
	})
}

// ChangePassword rotates the account password after local checks.
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)
	sess := middleware.CurrentSession(c)

	var form auth.ChangePasswordForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Debug("bind change password form failed", zap.Error(err))
	}

	fields := validate.Errors{}
	if !validate.Password(form.NewPassword) {
		fields["newPassword"] = "Password must be at least 8 characters with uppercase, lowercase, and a number"
	}
	if form.NewPassword != form.ConfirmPassword {
		fields["confirmPassword"] = "Passwords do not match"
	}
	if !fields.OK() {
		c.HTML(http.StatusOK, "profile.html", gin.H{
			"User":   sess.User,
			"Fields": fields,
		})
		return
	}

	if err := h.gw.ChangePassword(ctx, sid, form.CurrentPassword, form.NewPassword); err != nil {
		if errors.Is(err, xerrors.ErrUnauthorized) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		c.HTML(http.StatusOK, "profile.html", gin.H{
			"User":  sess.User,
			"Error": bannerMessage(err, "Could not change your password. Please try again."),
		})
		return
	}

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"User":    sess.User,
		"Success": "Password changed successfully.",
	})
}

// Delete removes the account and ends the session.
func (h *ProfileHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)
	sess := middleware.CurrentSession(c)

	var form auth.DeleteAccountForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Debug("bind delete account form failed", zap.Error(err))
	}
	if form.Password == "" {
		c.HTML(http.StatusOK, "profile.html", gin.H{
			"User":  sess.User,
			"Error": "Please enter your password to confirm.",
		})
		return
	}

	if err := h.gw.DeleteAccount(ctx, sid, form.Password); err != nil {
		if errors.Is(err, xerrors.ErrUnauthorized) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		c.HTML(http.StatusOK, "profile.html", gin.H{
			"User":  sess.User,
			"Error": bannerMessage(err, "Could not delete your account. Please try again."),
		})
		return
	}

	h.store.Logout(ctx, sid)
	c.Redirect(http.StatusSeeOther, "/login")
}

func bannerMessage(err error, fallback string) string {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
