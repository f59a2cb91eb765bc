package auth

import "github.com/gympro/gympro-client/internal/api"

type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

// User is the authenticated identity kept for the lifetime of a session.
type User struct {
	ID    api.ID  `json:"id"`
	Email string  `json:"email"`
	Name  string  `json:"name"`
	Role  Role    `json:"role"`
	Phone *string `json:"phone,omitempty"`
}
