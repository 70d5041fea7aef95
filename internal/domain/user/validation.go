package user

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
)

const (
	MinPasswordLength = 8
	// bcrypt rejects longer inputs.
	MaxPasswordLength = 72
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return httperr.ErrValidation("invalid_phone", "Phone number must be exactly 10 digits")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return httperr.ErrValidation("weak_password", "Password must be at least 8 characters")
	}
	if len(password) > MaxPasswordLength {
		return httperr.ErrValidation("password_too_long", "Password must be at most 72 bytes")
	}
	return nil
}

// NormalizeEmail trims, lowercases and checks the address syntax.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", httperr.ErrValidation("invalid_email", "Invalid email address")
	}
	return email, nil
}
