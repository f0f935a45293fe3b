package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/civicgift/donate-backend/internal/core/domain"
)

// GiftReader defines read operations for gift data
type GiftReader interface {
	// FindGiftByID retrieves a gift by its internal id.
	FindGiftByID(ctx context.Context, giftID int64) (*domain.Gift, error)

	// FindGiftBySearchableID retrieves a gift by the UUID exposed to callers.
	FindGiftBySearchableID(ctx context.Context, searchableID uuid.UUID) (*domain.Gift, error)

	// FindGiftsByCustomerID retrieves every gift stored against a processor
	// vault customer, restricted to the given payment method names.
	FindGiftsByCustomerID(ctx context.Context, customerID string, methodNames []string) ([]domain.Gift, error)

	// FindGiftsBySubscriptionID retrieves gifts sharing a recurring
	// subscription, newest first.
	FindGiftsBySubscriptionID(ctx context.Context, subscriptionID string) ([]domain.Gift, error)

	// FindGiftByReferenceNumber retrieves the gift that owns a transaction
	// with the given processor reference, or nil when none does.
	FindGiftByReferenceNumber(ctx context.Context, referenceNumber string) (*domain.Gift, error)

	// ListGifts retrieves a paginated list of gifts with their derived latest
	// status, amount and date, using token-based pagination.
	ListGifts(ctx context.Context, limit int, nextToken *string) ([]domain.GiftWithLatest, *string, error)
}

// GiftWriter defines write operations for gift data
type GiftWriter interface {
	// SaveGift persists a new gift and returns its assigned id.
	SaveGift(ctx context.Context, tx pgx.Tx, gift *domain.Gift) error

	// UpdateGiftDonor rewrites the stored donor reference.
	UpdateGiftDonor(ctx context.Context, tx pgx.Tx, giftID int64, donor domain.DonorRef) error

	// UpdateGiftGivenTo reallocates the gift to another beneficiary account.
	UpdateGiftGivenTo(ctx context.Context, tx pgx.Tx, giftID int64, givenTo domain.BeneficiaryAccount) error

	// UpdateGiftSubscriptionID sets the recurring subscription reference.
	UpdateGiftSubscriptionID(ctx context.Context, tx pgx.Tx, giftID int64, subscriptionID *string) error
}

// GiftRepositoryFacade combines all gift-related repository interfaces
type GiftRepositoryFacade interface {
	GiftReader
	GiftWriter
	TransactionManager
}
