// internal/session/cooldown.go
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cooldown disables the resend-OTP control for a window after each resend.
// The backend enforces the real rate limit; this only drives the UI state.
type Cooldown struct {
	client *redis.Client
	window time.Duration
}

func NewCooldown(client *redis.Client, window time.Duration) *Cooldown {
	return &Cooldown{client: client, window: window}
}

func (c *Cooldown) key(sid string) string {
	return fmt.Sprintf("sess:%s:resend", sid)
}

// Start arms the cooldown for the session.
func (c *Cooldown) Start(ctx context.Context, sid string) error {
	return c.client.Set(ctx, c.key(sid), "1", c.window).Err()
}

// Remaining returns how long the resend control stays disabled, or zero.
func (c *Cooldown) Remaining(ctx context.Context, sid string) time.Duration {
	ttl, err := c.client.TTL(ctx, c.key(sid)).Result()
	if err != nil || ttl < 0 {
		return 0
	}
	return ttl
}
