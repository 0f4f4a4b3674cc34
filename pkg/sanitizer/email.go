package sanitizer

import "strings"

// NormalizeEmail lowercases and trims an address. Format validation is the
// validator's job; an address that was invalid stays invalid.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
