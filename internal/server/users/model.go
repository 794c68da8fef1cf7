package users

import "time"

// User is an account record. The id is generated at registration and never
// changes; the email is stored lowercase and is unique across accounts.
// Hash and salt are hex strings produced by the auth package.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	PasswordSalt string
	CreatedAt    time.Time
}
