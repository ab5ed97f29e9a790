// internal/gateway/user.go
package gateway

import (
	"context"

	"voiceai-web/internal/domain/auth"
)

// UpdateProfile changes the user's names and email.
func (c *Client) UpdateProfile(ctx context.Context, sid string, form *auth.UpdateProfileForm) error {
	return c.put(ctx, sid, "/user/profile", map[string]string{
		"firstName": form.FirstName,
		"lastName":  form.LastName,
		"email":     form.Email,
	}, nil)
}

// ChangePassword rotates the account password.
func (c *Client) ChangePassword(ctx context.Context, sid, currentPassword, newPassword string) error {
	return c.put(ctx, sid, "/user/change-password", map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}, nil)
}

// DeleteAccount permanently removes the account after password confirmation.
func (c *Client) DeleteAccount(ctx context.Context, sid, password string) error {
	return c.delete(ctx, sid, "/user/account", map[string]string{
		"password": password,
	}, nil)
}
