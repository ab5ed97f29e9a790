// internal/gateway/auth.go
package gateway

import (
	"context"

	"voiceai-web/internal/domain/auth"
)

// Login exchanges credentials for a bearer token and profile.
func (c *Client) Login(ctx context.Context, sid, email, password string) (*auth.LoginResult, error) {
	var out auth.LoginResult
	err := c.post(ctx, sid, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account; the user then verifies by OTP.
func (c *Client) Register(ctx context.Context, sid string, form *auth.RegisterForm) (*auth.RegisterResult, error) {
	var out auth.RegisterResult
	err := c.post(ctx, sid, "/auth/register", map[string]string{
		"firstName": form.FirstName,
		"lastName":  form.LastName,
		"email":     form.Email,
		"phone":     form.Phone,
		"password":  form.Password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP confirms the emailed code. The backend may log the user in
// directly, in which case the result carries a token and user.
func (c *Client) VerifyOTP(ctx context.Context, sid, email, otp string) (*auth.VerifyOTPResult, error) {
	var out auth.VerifyOTPResult
	err := c.post(ctx, sid, "/auth/verify-email", map[string]string{
		"email": email,
		"otp":   otp,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendOTP asks the backend to email a fresh verification code.
func (c *Client) ResendOTP(ctx context.Context, sid, email string) (*auth.MessageResult, error) {
	var out auth.MessageResult
	err := c.post(ctx, sid, "/auth/resend-verification", map[string]string{
		"email": email,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ForgotPassword requests a password reset email.
func (c *Client) ForgotPassword(ctx context.Context, sid, email string) (*auth.MessageResult, error) {
	var out auth.MessageResult
	err := c.post(ctx, sid, "/auth/forgot-password", map[string]string{
		"email": email,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword completes a reset with the emailed token.
func (c *Client) ResetPassword(ctx context.Context, sid, token, password string) (*auth.MessageResult, error) {
	var out auth.MessageResult
	err := c.post(ctx, sid, "/auth/reset-password", map[string]string{
		"token":    token,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
