// internal/pkg/cookie/codec.go

// Package cookie signs and verifies the browser session-id cookie. The
// cookie only names a session; all real state lives server side, keyed by
// the embedded id. Signing keeps the id tamper-evident.
package cookie

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Codec struct {
	name   string
	secret []byte
	secure bool
	ttl    time.Duration
}

func NewCodec(name, secret string, secure bool, ttl time.Duration) *Codec {
	return &Codec{
		name:   name,
		secret: []byte(secret),
		secure: secure,
		ttl:    ttl,
	}
}

// Name is the cookie name the codec issues and reads.
func (c *Codec) Name() string { return c.name }

type sessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// Issue signs a cookie carrying the session id.
func (c *Codec) Issue(sid string) (*http.Cookie, error) {
	now := time.Now()
	claims := &sessionClaims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session cookie: %w", err)
	}

	return &http.Cookie{
		Name:     c.name,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Decode verifies the cookie value and returns the session id it names.
func (c *Codec) Decode(value string) (string, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(value, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("verify session cookie: %w", err)
	}
	if claims.SID == "" {
		return "", fmt.Errorf("session cookie has no session id")
	}
	return claims.SID, nil
}
