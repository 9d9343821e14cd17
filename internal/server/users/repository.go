// Package users stores accounts and authenticates them for the development
// server.
package users

import "context"

// Repository persists users. Create fails with common.ErrorAlreadyExists
// for a taken email; GetByEmail fails with common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
