package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role controls which dashboard a user lands on. The push channel itself is
// role-agnostic; roles only gate REST operations.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleVolunteer Role = "volunteer"
	RolePublic    Role = "public"
)

// User is an operator, volunteer, or public account.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
