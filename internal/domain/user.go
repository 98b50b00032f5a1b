package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account in the identity layer. The password hash never leaves
// the repo/service boundary; handlers only ever see ID and Email.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
