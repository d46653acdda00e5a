package validator

import (
	"net/mail"
	"strings"
)

func ValidateEmail(email string) bool {
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

func ValidateRequired(value string) bool {
	return strings.TrimSpace(value) != ""
}

// ValidatePassword enforces the minimum length only; complexity rules are a
// frontend concern here.
func ValidatePassword(password string) bool {
	return len(password) >= 8
}
