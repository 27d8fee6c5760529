package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Username pattern - letters, digits, dot, underscore, 3-30 chars
	UsernamePattern = `^[a-z0-9._]{3,30}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email    *regexp.Regexp
	Username *regexp.Regexp
}{
	Email:    regexp.MustCompile(EmailPattern),
	Username: regexp.MustCompile(UsernamePattern),
}

// IsValidEmail reports whether the given email matches the email pattern
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(strings.ToLower(strings.TrimSpace(email)))
}

// IsValidUsername reports whether the given username matches the username pattern
func IsValidUsername(username string) bool {
	return CompiledPatterns.Username.MatchString(strings.ToLower(strings.TrimSpace(username)))
}

// IsValidPassword reports whether the password satisfies the minimum length rule
func IsValidPassword(password string) bool {
	return len(password) >= PasswordMinLength
}
