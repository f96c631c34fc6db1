package model

import "time"

// Operator roles. Only "admin" may manage other operator accounts.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// Profile is a back-office operator account.
type Profile struct {
	ID        string    `json:"id"`
	Nama      string    `json:"nama"`
	Email     string    `json:"email"`
	Role      string    `json:"role"` // "admin" | "operator"
	CreatedAt time.Time `json:"created_at"`

	// PasswordHash is never serialized.
	PasswordHash string `json:"-"`
}

// ValidRole reports whether s is a recognized operator role.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleOperator
}
