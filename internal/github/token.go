package github

import (
	"fmt"
	"strings"
	"unicode"
)

// SanitizeToken removes invalid HTTP header characters from a token.
// Removes all whitespace characters: spaces, tabs, newlines, carriage
// returns. This prevents "invalid header field value" errors when setting
// Authorization headers.
func SanitizeToken(token string) string {
	token = strings.TrimSpace(token)

	token = strings.ReplaceAll(token, "\n", "")
	token = strings.ReplaceAll(token, "\r", "")
	token = strings.ReplaceAll(token, "\t", "")
	token = strings.ReplaceAll(token, " ", "")

	// Drop any remaining control characters
	token = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, token)

	return token
}

// ValidateToken checks if a token contains invalid characters.
// Returns an error if the token contains characters that would cause HTTP
// header issues.
func ValidateToken(token string) error {
	if token == "" {
		return fmt.Errorf("token is empty")
	}

	sanitized := SanitizeToken(token)
	if len(sanitized) != len(token) {
		return fmt.Errorf("token contains invalid characters (whitespace or control characters)")
	}

	return nil
}

// FormatAuthHeader formats a token for use in an Authorization header.
// A "Bearer " prefix pasted along with the token is stripped before the
// canonical one is applied.
func FormatAuthHeader(token string) string {
	sanitized := SanitizeToken(token)

	if strings.HasPrefix(sanitized, "Bearer") {
		sanitized = SanitizeToken(sanitized[6:])
	}

	return "Bearer " + sanitized
}
