package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/civicgift/donate-backend/internal/core/domain"
)

// ThankYouReader defines read operations for the thank-you letter queue
type ThankYouReader interface {
	// ListThankYouMarkers retrieves the queued markers with their gifts.
	ListThankYouMarkers(ctx context.Context) ([]domain.ThankYouMarker, error)

	// FindThankYouMarkerByID retrieves one marker.
	FindThankYouMarkerByID(ctx context.Context, id int64) (*domain.ThankYouMarker, error)

	// ExistsThankYouMarker reports whether a gift is already queued.
	ExistsThankYouMarker(ctx context.Context, giftID int64) (bool, error)
}

// ThankYouWriter defines write operations for the thank-you letter queue
type ThankYouWriter interface {
	// SaveThankYouMarker queues a gift for a letter.
	SaveThankYouMarker(ctx context.Context, tx pgx.Tx, giftID int64) error

	// DeleteThankYouMarker removes a marker once the letter went out.
	DeleteThankYouMarker(ctx context.Context, tx pgx.Tx, id int64) error
}

// ThankYouRepositoryFacade combines the thank-you queue interfaces
type ThankYouRepositoryFacade interface {
	ThankYouReader
	ThankYouWriter
	TransactionManager
}
