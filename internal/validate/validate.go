// internal/validate/validate.go
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field validation patterns. These are user-visible contracts shared with
// the backend; do not loosen them.
var (
	emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRE = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)
	otpRE   = regexp.MustCompile(`^\d{6}$`)

	hasLower  = regexp.MustCompile(`[a-z]`)
	hasUpper  = regexp.MustCompile(`[A-Z]`)
	hasDigit  = regexp.MustCompile(`\d`)
	hasSymbol = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// Errors is a set of field-level validation messages keyed by field name.
type Errors map[string]string

// OK reports whether no field failed validation.
func (e Errors) OK() bool { return len(e) == 0 }

// Email checks the address format: non-empty, local@domain.tld with no
// whitespace or extra @.
func Email(email string) bool {
	return emailRE.MatchString(email)
}

// Phone checks for an optional leading + followed by at least ten characters
// of digits, spaces, and hyphens.
func Phone(phone string) bool {
	return phoneRE.MatchString(phone)
}

// Password checks the composition rule for registration and reset: at least
// eight characters containing a lowercase letter, an uppercase letter, and a
// digit, in any order.
func Password(password string) bool {
	if utf8.RuneCountInString(password) < 8 {
		return false
	}
	return hasLower.MatchString(password) &&
		hasUpper.MatchString(password) &&
		hasDigit.MatchString(password)
}

// Strength is the password strength meter result.
type Strength struct {
	Score int
	Label string
}

var strengthLabels = []string{"Very weak", "Weak", "Fair", "Good", "Strong"}

// PasswordStrength scores a password 0-5 by counting satisfied criteria:
// length of eight or more characters, an uppercase letter, a lowercase
// letter, a digit, and a symbol. A symbol is anything outside [A-Za-z0-9],
// so accented letters count as symbols.
func PasswordStrength(password string) Strength {
	score := 0
	if utf8.RuneCountInString(password) >= 8 {
		score++
	}
	if hasUpper.MatchString(password) {
		score++
	}
	if hasLower.MatchString(password) {
		score++
	}
	if hasDigit.MatchString(password) {
		score++
	}
	if hasSymbol.MatchString(password) {
		score++
	}

	s := Strength{Score: score}
	if score >= 1 && score <= len(strengthLabels) {
		s.Label = strengthLabels[score-1]
	}
	return s
}

// OTP checks for exactly six numeric digits.
func OTP(code string) bool {
	return otpRE.MatchString(code)
}

// CollectOTP assembles the code from the six entry boxes. Each box
// contributes at most its first character, and only digits count; anything
// else leaves the code incomplete.
func CollectOTP(digits []string) string {
	var b strings.Builder
	for _, d := range digits {
		if d == "" {
			continue
		}
		c := d[0]
		if c < '0' || c > '9' {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
