package users

import "time"

// User is an account of the development server.
type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash []byte
	IsActive     bool
	CreatedAt    time.Time
}
