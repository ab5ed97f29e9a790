// internal/handlers/auth/helpers.go
package auth

import (
	"net/url"
	"strings"
)

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

func queryEscape(s string) string {
	return url.QueryEscape(s)
}

// afterColon extracts the human message from a wrapped sentinel error of the
// form "unauthorized access: token expired".
func afterColon(s string) string {
	if i := strings.LastIndex(s, ": "); i >= 0 {
		return s[i+2:]
	}
	return ""
}
