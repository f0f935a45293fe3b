package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/civicgift/donate-backend/internal/apperrors"
	"github.com/civicgift/donate-backend/internal/core/domain"
	portsrepo "github.com/civicgift/donate-backend/internal/core/ports/repositories"
)

// LedgerService owns the append-only transaction history of gifts. Every
// write path funnels through Append so the running total is always computed
// from the latest entry, never trusted from the caller.
type LedgerService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(transactionRepo portsrepo.TransactionRepositoryFacade) *LedgerService {
	return &LedgerService{transactionRepo: transactionRepo}
}

// Latest returns the most recent transaction of a gift, or nil for an empty
// history.
func (s *LedgerService) Latest(ctx context.Context, giftID int64) (*domain.Transaction, error) {
	return s.transactionRepo.FindLatestTransactionByGiftID(ctx, giftID)
}

// RunningTotal returns the gift's current balance: the gross amount of the
// most recent transaction, or zero for an empty history.
func (s *LedgerService) RunningTotal(ctx context.Context, giftID int64) (decimal.Decimal, error) {
	latest, err := s.transactionRepo.FindLatestTransactionByGiftID(ctx, giftID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read running total for gift %d: %w", giftID, err)
	}
	if latest == nil {
		return decimal.Zero, nil
	}
	return latest.GrossAmount, nil
}

// History returns the gift's full transaction history in ledger order.
func (s *LedgerService) History(ctx context.Context, giftID int64) ([]domain.Transaction, error) {
	return s.transactionRepo.FindTransactionsByGiftID(ctx, giftID)
}

// Append builds and persists one entry inside the caller's database
// transaction, folding the input amount into the current running total. A
// replayed entry surfaces as apperrors.ErrDuplicate from the repository.
func (s *LedgerService) Append(ctx context.Context, tx pgx.Tx, input TransactionInput) (*domain.Transaction, error) {
	currentTotal, err := s.RunningTotal(ctx, input.GiftID)
	if err != nil {
		return nil, err
	}
	return s.AppendWithTotal(ctx, tx, input, currentTotal)
}

// AppendWithTotal is Append for callers that already hold the running
// total, such as the batch replay folding several entries in sequence.
func (s *LedgerService) AppendWithTotal(ctx context.Context, tx pgx.Tx, input TransactionInput, currentTotal decimal.Decimal) (*domain.Transaction, error) {
	txn, err := BuildTransaction(input, currentTotal)
	if err != nil {
		return nil, err
	}
	if err := s.transactionRepo.SaveTransaction(ctx, tx, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// ensureThankYouMarker queues a gift for a thank-you letter once its running
// total reaches the threshold. An already queued gift is left alone.
func ensureThankYouMarker(ctx context.Context, tx pgx.Tx, repo portsrepo.ThankYouRepositoryFacade, giftID int64, gross, threshold decimal.Decimal) error {
	if gross.LessThan(threshold) {
		return nil
	}
	exists, err := repo.ExistsThankYouMarker(ctx, giftID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := repo.SaveThankYouMarker(ctx, tx, giftID); err != nil && !errors.Is(err, apperrors.ErrDuplicate) {
		return err
	}
	return nil
}
