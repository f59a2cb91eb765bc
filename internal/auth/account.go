package auth

import (
	"context"
	"strings"
)

type RegisterForm struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

// Register creates a member account. The caller logs in afterwards.
func (s *Session) Register(ctx context.Context, f RegisterForm) error {
	if strings.TrimSpace(f.Name) == "" {
		return invalid("name", "Name is required")
	}
	if err := requireEmail(f.Email); err != nil {
		return err
	}
	if err := requireNewPassword(f.Password, f.ConfirmPassword); err != nil {
		return err
	}
	f.Email = strings.TrimSpace(f.Email)
	return s.api.Post(ctx, "/auth/register", f, nil)
}

type emailBody struct {
	Email string `json:"email"`
}

func (s *Session) ForgotPassword(ctx context.Context, email string) error {
	if err := requireEmail(email); err != nil {
		return err
	}
	return s.api.Post(ctx, "/auth/forgot-password", emailBody{Email: strings.TrimSpace(email)}, nil)
}

type resetBody struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (s *Session) ResetPassword(ctx context.Context, token, password, confirm string) error {
	if strings.TrimSpace(token) == "" {
		return invalid("token", "Reset link is invalid or missing")
	}
	if err := requireNewPassword(password, confirm); err != nil {
		return err
	}
	return s.api.Post(ctx, "/auth/reset-password", resetBody{Token: token, NewPassword: password}, nil)
}

type changeBody struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Session) ChangePassword(ctx context.Context, current, password, confirm string) error {
	if current == "" {
		return invalid("currentPassword", "Current password is required")
	}
	if err := requireNewPassword(password, confirm); err != nil {
		return err
	}
	if current == password {
		return invalid("password", "New password must differ from the current one")
	}
	return s.api.Post(ctx, "/auth/change-password", changeBody{CurrentPassword: current, NewPassword: password}, nil)
}
