// Package store persists user records keyed by email.
package store

import (
	"context"
	"errors"

	"github.com/isdelr/login-api/internal/models"
)

var (
	// ErrNotFound is returned by Get when no record exists for the email.
	ErrNotFound = errors.New("user not found")
	// ErrAlreadyExists is returned by Put when the email is already registered.
	ErrAlreadyExists = errors.New("user already exists")
)

// CredentialStore is the user-record table. Put is create-only.
type CredentialStore interface {
	Get(ctx context.Context, email string) (models.User, error)
	Put(ctx context.Context, user models.User) error
}
