package clients

import (
	"context"

	"github.com/civicgift/donate-backend/internal/core/domain"
)

// DirectorySearch narrows a user directory query. Zero-valued fields are
// not sent.
type DirectorySearch struct {
	UserID   int64
	Email    string
	LastName string
}

// UserDirectory is the external system of record for donor identities.
type UserDirectory interface {
	// FindUser returns users matching the search, empty when none match.
	FindUser(ctx context.Context, search DirectorySearch) ([]domain.DirectoryUser, error)

	// CreateUser registers a new donor and returns the record with its
	// assigned id.
	CreateUser(ctx context.Context, user domain.DirectoryUser) (*domain.DirectoryUser, error)

	// UpdateUser overwrites contact details on an existing donor.
	UpdateUser(ctx context.Context, user domain.DirectoryUser) (*domain.DirectoryUser, error)
}
