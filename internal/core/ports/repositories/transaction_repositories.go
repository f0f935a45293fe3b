package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/civicgift/donate-backend/internal/core/domain"
)

// TransactionReader defines read operations for ledger transaction data
type TransactionReader interface {
	// FindTransactionsByGiftID retrieves the full history of a gift, ordered
	// by date then id ascending.
	FindTransactionsByGiftID(ctx context.Context, giftID int64) ([]domain.Transaction, error)

	// FindLatestTransactionByGiftID retrieves the most recent transaction of
	// a gift, or nil when the gift has no history yet.
	FindLatestTransactionByGiftID(ctx context.Context, giftID int64) (*domain.Transaction, error)

	// FindTransactionByReference retrieves the transaction matching the
	// composite key, or nil when no such row exists.
	FindTransactionByReference(ctx context.Context, giftID int64, kind domain.TransactionKind, status domain.TransactionStatus, referenceNumber string) (*domain.Transaction, error)

	// ExistsByReference reports whether any transaction carries the given
	// processor reference, regardless of gift.
	ExistsByReference(ctx context.Context, referenceNumber string) (bool, error)

	// ListTransactions retrieves a paginated list of transactions across all
	// gifts using token-based pagination.
	ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for ledger transaction data
type TransactionWriter interface {
	// SaveTransaction appends one transaction row inside the caller's
	// database transaction. A violation of the
	// (gift_id, kind, status, reference_number) unique constraint is
	// returned as apperrors.ErrDuplicate.
	SaveTransaction(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error

	// UpdateReceiptSentAt stamps the time a receipt or letter went out.
	UpdateReceiptSentAt(ctx context.Context, tx pgx.Tx, transactionID int64, sentAt time.Time) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionManager
}
