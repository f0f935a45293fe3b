package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/civicgift/donate-backend/internal/apperrors"
	"github.com/civicgift/donate-backend/internal/core/domain"
	"github.com/civicgift/donate-backend/internal/core/services"
)

func TestLedgerRunningTotal_EmptyHistoryIsZero(t *testing.T) {
	repo := new(MockTransactionRepository)
	ledger := services.NewLedgerService(repo)
	ctx := context.Background()

	repo.On("FindLatestTransactionByGiftID", ctx, int64(1)).Return(nil, nil).Once()

	total, err := ledger.RunningTotal(ctx, 1)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
	repo.AssertExpectations(t)
}

func TestLedgerRunningTotal_ReadsLatestGross(t *testing.T) {
	repo := new(MockTransactionRepository)
	ledger := services.NewLedgerService(repo)
	ctx := context.Background()

	repo.On("FindLatestTransactionByGiftID", ctx, int64(1)).
		Return(&domain.Transaction{GiftID: 1, GrossAmount: decimal.NewFromInt(75)}, nil).Once()

	total, err := ledger.RunningTotal(ctx, 1)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(75).Equal(total))
}

func TestLedgerAppend_FoldsOntoCurrentTotal(t *testing.T) {
	repo := new(MockTransactionRepository)
	ledger := services.NewLedgerService(repo)
	ctx := context.Background()

	repo.On("FindLatestTransactionByGiftID", ctx, int64(9)).
		Return(&domain.Transaction{GiftID: 9, GrossAmount: decimal.NewFromInt(40)}, nil).Once()
	repo.On("SaveTransaction", ctx, nil, mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn.GrossAmount.Equal(decimal.NewFromInt(65))
	})).Return(nil).Once()

	agentID := int64(7)
	txn, err := ledger.Append(ctx, nil, services.TransactionInput{
		GiftID:          9,
		AgentID:         &agentID,
		Kind:            domain.KindGift,
		Status:          domain.StatusCompleted,
		ReferenceNumber: "sale_3",
		Amount:          decimal.NewFromInt(25),
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(65).Equal(txn.GrossAmount))
	repo.AssertExpectations(t)
}

func TestLedgerAppendWithTotal_SurfacesDuplicate(t *testing.T) {
	repo := new(MockTransactionRepository)
	ledger := services.NewLedgerService(repo)
	ctx := context.Background()

	repo.On("SaveTransaction", ctx, nil, mock.AnythingOfType("*domain.Transaction")).
		Return(apperrors.ErrDuplicate).Once()

	agentID := int64(7)
	_, err := ledger.AppendWithTotal(ctx, nil, services.TransactionInput{
		GiftID:          9,
		AgentID:         &agentID,
		Kind:            domain.KindGift,
		Status:          domain.StatusCompleted,
		ReferenceNumber: "sale_3",
		Amount:          decimal.NewFromInt(25),
	}, decimal.Zero)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}
