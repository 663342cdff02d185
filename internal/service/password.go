package service

import (
	"strings"
	"unicode"
)

const (
	minPasswordLength = 8

	MsgWeakPassword = "Password must be at least 8 characters long and include at least one uppercase letter, one lowercase letter, one digit, and one special character."
)

// ValidatePassword enforces the registration policy: at least eight
// characters with a lowercase letter, an uppercase letter, a digit and a
// character that is neither letter nor digit (underscore counts).
// The password must be a single line; one trailing newline is ignored.
func ValidatePassword(password string) error {
	password = strings.TrimSuffix(password, "\n")
	if strings.Contains(password, "\n") {
		return invalid(MsgWeakPassword)
	}

	var n int
	var lower, upper, digit, special bool
	for _, r := range password {
		n++
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case r == '_' || !(unicode.IsLetter(r) || unicode.IsNumber(r)):
			special = true
		}
	}
	if n < minPasswordLength || !lower || !upper || !digit || !special {
		return invalid(MsgWeakPassword)
	}
	return nil
}
