package domain

import "time"

// User represents a registered account. PasswordHash holds a bcrypt digest;
// the plaintext is never stored.
type User struct {
	ID           string
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}
