package auth

import (
	"fmt"
	"regexp"
	"strings"
)

const minPasswordLen = 6

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidationError is raised before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func requireEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return invalid("email", "Email is required")
	}
	if !emailRe.MatchString(email) {
		return invalid("email", "Please enter a valid email address")
	}
	return nil
}

func requireNewPassword(password, confirm string) error {
	if len(password) < minPasswordLen {
		return invalid("password", "Password must be at least %d characters", minPasswordLen)
	}
	if password != confirm {
		return invalid("confirmPassword", "Passwords do not match")
	}
	return nil
}
