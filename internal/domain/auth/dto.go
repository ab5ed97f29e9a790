// internal/domain/auth/dto.go
package auth

import "voiceai-web/internal/domain/user"

// LoginForm is the browser-submitted login form.
type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// RegisterForm is the browser-submitted registration form.
type RegisterForm struct {
	FirstName       string `form:"firstName"`
	LastName        string `form:"lastName"`
	Email           string `form:"email"`
	Phone           string `form:"phone"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
}

// ForgotPasswordForm requests a password reset email.
type ForgotPasswordForm struct {
	Email string `form:"email"`
}

// ResetPasswordForm completes a password reset using the emailed token.
type ResetPasswordForm struct {
	Token           string `form:"token"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
}

// VerifyOTPForm carries the six OTP digit boxes from the verify-email page.
type VerifyOTPForm struct {
	Email string `form:"email"`
	OTP0  string `form:"otp0"`
	OTP1  string `form:"otp1"`
	OTP2  string `form:"otp2"`
	OTP3  string `form:"otp3"`
	OTP4  string `form:"otp4"`
	OTP5  string `form:"otp5"`
}

// Digits returns the raw box values in order.
func (f *VerifyOTPForm) Digits() []string {
	return []string{f.OTP0, f.OTP1, f.OTP2, f.OTP3, f.OTP4, f.OTP5}
}

// UpdateProfileForm updates the user's names and email.
type UpdateProfileForm struct {
	FirstName string `form:"firstName"`
	LastName  string `form:"lastName"`
	Email     string `form:"email"`
}

// ChangePasswordForm changes the account password.
type ChangePasswordForm struct {
	CurrentPassword string `form:"currentPassword"`
	NewPassword     string `form:"newPassword"`
	ConfirmPassword string `form:"confirmPassword"`
}

// DeleteAccountForm confirms account deletion with the current password.
type DeleteAccountForm struct {
	Password string `form:"password"`
}

// LoginResult is the payload of POST /auth/login.
type LoginResult struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

// RegisterResult is the payload of POST /auth/register.
type RegisterResult struct {
	Message string    `json:"message"`
	User    user.User `json:"user"`
}

// VerifyOTPResult is the payload of POST /auth/verify-email. Token and User
// are present only when the backend logs the user in on verification.
type VerifyOTPResult struct {
	Message string     `json:"message"`
	Token   string     `json:"token,omitempty"`
	User    *user.User `json:"user,omitempty"`
}

// MessageResult is the payload of operations that return only a message.
type MessageResult struct {
	Message string `json:"message"`
}
