package validator

import "regexp"

// Regex patterns for registration input
var (
	// Email pattern - lowercase Gmail addresses only. Mixed-case input fails
	// the match outright, no normalization happens here.
	EmailPattern = regexp.MustCompile(`^[a-z0-9._%+-]+@gmail\.com$`)

	// Username pattern: alphabetic characters only, no digits or punctuation
	UsernamePattern = regexp.MustCompile(`^[a-zA-Z]+$`)

	upperPattern   = regexp.MustCompile(`[A-Z]`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
	specialPattern = regexp.MustCompile(`[#?!@$%^&*-]`)
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// IsValidEmail reports whether email is a lowercase gmail.com address.
func IsValidEmail(email string) bool {
	if email == "" {
		return false
	}
	return EmailPattern.MatchString(email)
}

// IsValidUsername reports whether username contains letters only.
func IsValidUsername(username string) bool {
	if username == "" {
		return false
	}
	return UsernamePattern.MatchString(username)
}

// IsValidPassword reports whether password meets every strength rule.
func IsValidPassword(password string) bool {
	return GetPasswordError(password) == ""
}

// GetEmailError returns a user-facing error message for email, or "" when
// the address is acceptable.
func GetEmailError(email string) string {
	if email == "" {
		return "email must not be empty"
	}
	if !IsValidEmail(email) {
		return "email must be a lowercase gmail.com address"
	}
	return ""
}

// GetUsernameError returns a user-facing error message for username, or ""
// when the username is acceptable.
func GetUsernameError(username string) string {
	if username == "" {
		return "username must not be empty"
	}
	if !IsValidUsername(username) {
		return "username must contain alphabetic characters only"
	}
	return ""
}

// GetPasswordError returns the first failing strength rule for password, or
// "" when every rule passes.
func GetPasswordError(password string) string {
	if password == "" {
		return "password must not be empty"
	}
	if len(password) < MinPasswordLength {
		return "password must be at least 8 characters"
	}
	if !upperPattern.MatchString(password) {
		return "password must contain at least one uppercase letter"
	}
	if !lowerPattern.MatchString(password) {
		return "password must contain at least one lowercase letter"
	}
	if !digitPattern.MatchString(password) {
		return "password must contain at least one digit"
	}
	if !specialPattern.MatchString(password) {
		return "password must contain at least one special character (#?!@$%^&*-)"
	}
	return ""
}
