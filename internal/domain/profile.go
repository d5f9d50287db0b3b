package domain

import "time"

// Roles carried in profile records and JWT claims.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Profile is a user profile, keyed by the owning user's identifier.
type Profile struct {
	UserID    string
	Email     string
	Username  string
	Role      string
	AvatarURL string
	CreatedAt time.Time
}
