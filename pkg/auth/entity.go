package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is the admin account. The site has exactly one; there is no public
// registration.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
