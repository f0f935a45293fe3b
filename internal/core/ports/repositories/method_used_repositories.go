package repositories

import (
	"context"

	"github.com/civicgift/donate-backend/internal/core/domain"
)

// MethodUsedReader defines read operations for payment method data
type MethodUsedReader interface {
	// FindMethodUsedByID retrieves a payment method by id.
	FindMethodUsedByID(ctx context.Context, id int16) (*domain.MethodUsed, error)

	// FindMethodUsedByName retrieves a payment method by its exact name.
	FindMethodUsedByName(ctx context.Context, name string) (*domain.MethodUsed, error)

	// ListMethodsUsed retrieves all payment methods.
	ListMethodsUsed(ctx context.Context) ([]domain.MethodUsed, error)
}

// MethodUsedRepositoryFacade is the payment method repository interface.
// The table is seed data; there is no writer.
type MethodUsedRepositoryFacade interface {
	MethodUsedReader
}
