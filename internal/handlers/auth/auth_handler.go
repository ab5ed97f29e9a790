// internal/handlers/auth/auth_handler.go
package auth

import (
	"errors"
	"net/http"
	"time"

	authdto "voiceai-web/internal/domain/auth"
	"voiceai-web/internal/gateway"
	"voiceai-web/internal/middleware"
	"voiceai-web/internal/pkg/xerrors"
	"voiceai-web/internal/session"
	"voiceai-web/internal/validate"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	gw       *gateway.Client
	store    *session.Store
	cooldown *session.Cooldown
	logger   *zap.Logger
}

func NewAuthHandler(gw *gateway.Client, store *session.Store, cooldown *session.Cooldown, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		gw:       gw,
		store:    store,
		cooldown: cooldown,
		logger:   logger,
	}
}

// ========== Login ==========

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Form":   authdto.LoginForm{},
		"Fields": validate.Errors{},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form authdto.LoginForm
	_ = c.ShouldBind(&form)

	fields := validate.Errors{}
	if form.Email == "" {
		fields["email"] = "Email is required"
	} else if !validate.Email(form.Email) {
		fields["email"] = "Invalid email address"
	}
	if form.Password == "" {
		fields["password"] = "Password is required"
	}
	if !fields.OK() {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"Form": form, "Fields": fields})
		return
	}

	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	res, err := h.gw.Login(ctx, sid, form.Email, form.Password)
	if err != nil {
		h.logger.Warn("login failed",
			zap.String("email", form.Email),
			zap.Error(err),
		)
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Form":   form,
			"Fields": validate.Errors{},
			"Error":  bannerMessage(err, "Invalid email or password"),
		})
		return
	}

	h.store.Login(ctx, sid, res.Token, &res.User)
	h.logger.Info("user logged in",
		zap.String("user_id", res.User.ID),
		zap.String("email", res.User.Email),
	)

	target := h.store.TakeRedirectTarget(ctx, sid)
	if target == "" {
		target = "/dashboard"
	}
	c.Redirect(http.StatusSeeOther, target)
}

// ========== Registration ==========

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"Form":   authdto.RegisterForm{},
		"Fields": validate.Errors{},
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form authdto.RegisterForm
	_ = c.ShouldBind(&form)

	fields := validateRegister(&form)
	if !fields.OK() {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{"Form": form, "Fields": fields})
		return
	}

	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	if _, err := h.gw.Register(ctx, sid, &form); err != nil {
		h.logger.Warn("registration failed",
			zap.String("email", form.Email),
			zap.Error(err),
		)
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Form":   form,
			"Fields": validate.Errors{},
			"Error":  bannerMessage(err, "An error occurred during registration"),
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/verify-email?email="+queryEscape(form.Email))
}

func validateRegister(form *authdto.RegisterForm) validate.Errors {
	fields := validate.Errors{}

	if trimmed(form.FirstName) == "" {
		fields["firstName"] = "First name is required"
	}
	if trimmed(form.LastName) == "" {
		fields["lastName"] = "Last name is required"
	}
	if trimmed(form.Email) == "" {
		fields["email"] = "Email is required"
	} else if !validate.Email(form.Email) {
		fields["email"] = "Invalid email address"
	}
	if trimmed(form.Phone) == "" {
		fields["phone"] = "Phone number is required"
	} else if !validate.Phone(form.Phone) {
		fields["phone"] = "Invalid phone number"
	}
	if form.Password == "" {
		fields["password"] = "Password is required"
	} else if len(form.Password) < 8 {
		fields["password"] = "Password must be at least 8 characters"
	} else if !validate.Password(form.Password) {
		fields["password"] = "Password must contain uppercase, lowercase, and numbers"
	}
	if form.Password != form.ConfirmPassword {
		fields["confirmPassword"] = "Passwords do not match"
	}

	return fields
}

// ========== Email verification ==========

func (h *AuthHandler) ShowVerifyEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		// Nothing to verify without an email to verify against.
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	c.HTML(http.StatusOK, "verify_email.html", gin.H{
		"Email":    email,
		"Cooldown": h.cooldownSeconds(c),
	})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var form authdto.VerifyOTPForm
	_ = c.ShouldBind(&form)

	if form.Email == "" {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	code := validate.CollectOTP(form.Digits())
	if !validate.OTP(code) {
		c.HTML(http.StatusBadRequest, "verify_email.html", gin.H{
			"Email":    form.Email,
			"Cooldown": h.cooldownSeconds(c),
			"Error":    "Please enter the complete 6-digit OTP",
		})
		return
	}

	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	res, err := h.gw.VerifyOTP(ctx, sid, form.Email, code)
	if err != nil {
		c.HTML(http.StatusOK, "verify_email.html", gin.H{
			"Email":    form.Email,
			"Cooldown": h.cooldownSeconds(c),
			"Error":    bannerMessage(err, "Verification failed. Please try again."),
		})
		return
	}

	// Some backends log the user straight in on verification.
	if res.Token != "" && res.User != nil {
		h.store.Login(ctx, sid, res.Token, res.User)
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"Form":    authdto.LoginForm{},
		"Fields":  validate.Errors{},
		"Success": fallbackMessage(res.Message, "Email verified! You can sign in now."),
	})
}

func (h *AuthHandler) ResendOTP(c *gin.Context) {
	email := c.PostForm("email")
	if email == "" {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	if remaining := h.cooldown.Remaining(ctx, sid); remaining > 0 {
		c.HTML(http.StatusOK, "verify_email.html", gin.H{
			"Email":    email,
			"Cooldown": int(remaining.Seconds()),
		})
		return
	}

	res, err := h.gw.ResendOTP(ctx, sid, email)
	if err != nil {
		c.HTML(http.StatusOK, "verify_email.html", gin.H{
			"Email":    email,
			"Cooldown": h.cooldownSeconds(c),
			"Error":    bannerMessage(err, "Failed to resend OTP"),
		})
		return
	}

	if err := h.cooldown.Start(ctx, sid); err != nil {
		h.logger.Warn("failed to arm resend cooldown", zap.Error(err))
	}

	c.HTML(http.StatusOK, "verify_email.html", gin.H{
		"Email":    email,
		"Cooldown": h.cooldownSeconds(c),
		"Success":  fallbackMessage(res.Message, "OTP resent to your email."),
	})
}

func (h *AuthHandler) cooldownSeconds(c *gin.Context) int {
	remaining := h.cooldown.Remaining(c.Request.Context(), middleware.SessionID(c))
	return int(remaining.Round(time.Second).Seconds())
}

// ========== Password reset ==========

func (h *AuthHandler) ShowForgotPassword(c *gin.Context) {
	c.HTML(http.StatusOK, "forgot_password.html", gin.H{
		"Form":   authdto.ForgotPasswordForm{},
		"Fields": validate.Errors{},
	})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var form authdto.ForgotPasswordForm
	_ = c.ShouldBind(&form)

	fields := validate.Errors{}
	if form.Email == "" {
		fields["email"] = "Email is required"
	} else if !validate.Email(form.Email) {
		fields["email"] = "Invalid email address"
	}
	if !fields.OK() {
		c.HTML(http.StatusBadRequest, "forgot_password.html", gin.H{"Form": form, "Fields": fields})
		return
	}

	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	res, err := h.gw.ForgotPassword(ctx, sid, form.Email)
	if err != nil {
		c.HTML(http.StatusOK, "forgot_password.html", gin.H{
			"Form":   form,
			"Fields": validate.Errors{},
			"Error":  bannerMessage(err, "Failed to send reset email"),
		})
		return
	}

	c.HTML(http.StatusOK, "forgot_password.html", gin.H{
		"Form":    authdto.ForgotPasswordForm{},
		"Fields":  validate.Errors{},
		"Success": fallbackMessage(res.Message, "If that email exists, a reset link is on its way."),
	})
}

func (h *AuthHandler) ShowResetPassword(c *gin.Context) {
	token := c.Query("token")
	c.HTML(http.StatusOK, "reset_password.html", gin.H{
		"Token":        token,
		"TokenMissing": token == "",
		"Fields":       validate.Errors{},
	})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var form authdto.ResetPasswordForm
	_ = c.ShouldBind(&form)

	if form.Token == "" {
		c.HTML(http.StatusBadRequest, "reset_password.html", gin.H{
			"TokenMissing": true,
			"Fields":       validate.Errors{},
			"Error":        "Invalid or expired reset token",
		})
		return
	}

	fields := validate.Errors{}
	switch {
	case form.Password == "":
		fields["password"] = "Password is required"
	case len(form.Password) < 8:
		fields["password"] = "Password must be at least 8 characters"
	case !validate.Password(form.Password):
		fields["password"] = "Password must contain uppercase, lowercase, and numbers"
	case validate.PasswordStrength(form.Password).Score < 3:
		fields["password"] = "Please choose a stronger password"
	}
	if form.Password != form.ConfirmPassword {
		fields["confirmPassword"] = "Passwords do not match"
	}
	if !fields.OK() {
		c.HTML(http.StatusBadRequest, "reset_password.html", gin.H{
			"Token":  form.Token,
			"Fields": fields,
		})
		return
	}

	ctx := c.Request.Context()
	sid := middleware.SessionID(c)

	res, err := h.gw.ResetPassword(ctx, sid, form.Token, form.Password)
	if err != nil {
		c.HTML(http.StatusOK, "reset_password.html", gin.H{
			"Token":  form.Token,
			"Fields": validate.Errors{},
			"Error":  bannerMessage(err, "Failed to reset password"),
		})
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"Form":    authdto.LoginForm{},
		"Fields":  validate.Errors{},
		"Success": fallbackMessage(res.Message, "Password reset. You can sign in now."),
	})
}

// ========== Logout ==========

// Logout clears the session and navigates to the login page. Idempotent:
// repeating it converges to the same empty state and the same target.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.store.Logout(c.Request.Context(), middleware.SessionID(c))
	c.Redirect(http.StatusSeeOther, "/login")
}

// ========== helpers ==========

// bannerMessage maps an error to the banner text for a form: the server's
// message when it sent one, the flow-specific fallback otherwise. A 401 has
// already cleared the session by the time it gets here.
func bannerMessage(err error, fallback string) string {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, xerrors.ErrUnauthorized) || errors.Is(err, xerrors.ErrNotFound) {
		if msg := afterColon(err.Error()); msg != "" {
			return msg
		}
	}
	return fallback
}

func fallbackMessage(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
