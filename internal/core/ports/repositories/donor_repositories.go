package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/civicgift/donate-backend/internal/core/domain"
)

// QueuedDonorReader defines read operations for donors awaiting matching
type QueuedDonorReader interface {
	// FindQueuedDonorByID retrieves a queued donor row.
	FindQueuedDonorByID(ctx context.Context, id int64) (*domain.PendingDonor, error)

	// FindQueuedDonorByGiftID retrieves the queued donor attached to a gift,
	// or nil when none is queued.
	FindQueuedDonorByGiftID(ctx context.Context, giftID int64) (*domain.PendingDonor, error)
}

// QueuedDonorWriter defines write operations for donors awaiting matching
type QueuedDonorWriter interface {
	// SaveQueuedDonor persists the donor details captured at donation time.
	SaveQueuedDonor(ctx context.Context, tx pgx.Tx, donor *domain.PendingDonor) error

	// DeleteQueuedDonor removes a queued donor row.
	DeleteQueuedDonor(ctx context.Context, tx pgx.Tx, id int64) error
}

// CagedDonorReader defines read operations for donors that failed matching
type CagedDonorReader interface {
	// FindCagedDonorByID retrieves a caged donor row.
	FindCagedDonorByID(ctx context.Context, id int64) (*domain.PendingDonor, error)

	// FindCagedDonorByGiftID retrieves the caged donor attached to a gift,
	// or nil when none is caged.
	FindCagedDonorByGiftID(ctx context.Context, giftID int64) (*domain.PendingDonor, error)

	// ListCagedDonors retrieves a paginated list of caged donors using
	// token-based pagination.
	ListCagedDonors(ctx context.Context, limit int, nextToken *string) ([]domain.PendingDonor, *string, error)
}

// CagedDonorWriter defines write operations for donors that failed matching
type CagedDonorWriter interface {
	// SaveCagedDonor persists a donor that could not be matched.
	SaveCagedDonor(ctx context.Context, tx pgx.Tx, donor *domain.PendingDonor) error

	// IncrementTimesViewed bumps the review counter on a caged donor.
	IncrementTimesViewed(ctx context.Context, id int64) error

	// DeleteCagedDonor removes a caged donor row once resolved.
	DeleteCagedDonor(ctx context.Context, tx pgx.Tx, id int64) error
}

// DonorRepositoryFacade combines the queued and caged donor interfaces.
// A donor lives in at most one of the two tables at any time.
type DonorRepositoryFacade interface {
	QueuedDonorReader
	QueuedDonorWriter
	CagedDonorReader
	CagedDonorWriter
	TransactionManager
}
