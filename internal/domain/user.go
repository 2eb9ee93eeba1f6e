package domain

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// User is an account that owns projects. The unique username doubles as
// the namespace prefix for subdomain derivation.
type User struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// GenerateUserID creates a unique user ID with "usr_" prefix.
func GenerateUserID() string {
	b := make([]byte, 14)
	rand.Read(b)
	return "usr_" + hex.EncodeToString(b)[:27]
}
