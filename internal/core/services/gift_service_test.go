package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicgift/donate-backend/internal/core/domain"
	"github.com/civicgift/donate-backend/internal/core/services"
	"github.com/civicgift/donate-backend/internal/dto"
)

func TestGetGiftIncludesHistory(t *testing.T) {
	ctx := context.Background()
	giftRepo := new(MockGiftRepository)
	txnRepo := new(MockTransactionRepository)
	svc := services.NewGiftService(giftRepo, services.NewLedgerService(txnRepo))

	searchableID := uuid.New()
	subID := "sub_9"
	campaignID := int64(2)
	refundedAt := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	giftRepo.On("FindGiftBySearchableID", ctx, searchableID).Return(&domain.Gift{
		ID:                      40,
		SearchableID:            searchableID,
		GivenTo:                 domain.AccountAction,
		MethodUsedID:            1,
		CampaignID:              &campaignID,
		RecurringSubscriptionID: &subID,
	}, nil).Once()
	txnRepo.On("FindTransactionsByGiftID", ctx, int64(40)).Return([]domain.Transaction{
		{GiftID: 40, Kind: domain.KindGift, Status: domain.StatusCompleted, GrossAmount: decimal.NewFromInt(150)},
		{GiftID: 40, Kind: domain.KindRefund, Status: domain.StatusCompleted, GrossAmount: decimal.NewFromInt(110), Date: refundedAt},
	}, nil).Once()

	resp, err := svc.GetGift(ctx, searchableID)

	require.NoError(t, err)
	assert.Equal(t, searchableID.String(), resp.Gift.GiftID)
	assert.True(t, resp.Gift.Recurring)
	assert.Len(t, resp.Transactions, 2)
	// The head reflects the newest entry of the history.
	assert.Equal(t, string(domain.StatusCompleted), resp.Gift.LatestStatus)
	assert.True(t, decimal.NewFromInt(110).Equal(resp.Gift.LatestAmount))
	require.NotNil(t, resp.Gift.LatestDate)
	assert.True(t, refundedAt.Equal(*resp.Gift.LatestDate))
}

func TestListGiftsClampsLimit(t *testing.T) {
	ctx := context.Background()
	giftRepo := new(MockGiftRepository)
	txnRepo := new(MockTransactionRepository)
	svc := services.NewGiftService(giftRepo, services.NewLedgerService(txnRepo))

	giftRepo.On("ListGifts", ctx, 20, (*string)(nil)).
		Return([]domain.GiftWithLatest{}, nil, nil).Once()

	resp, err := svc.ListGifts(ctx, dto.ListGiftsParams{Limit: 5000})

	require.NoError(t, err)
	assert.Empty(t, resp.Gifts)
	giftRepo.AssertExpectations(t)
}

func TestListTransactionsPassesToken(t *testing.T) {
	ctx := context.Background()
	giftRepo := new(MockGiftRepository)
	txnRepo := new(MockTransactionRepository)
	svc := services.NewGiftService(giftRepo, services.NewLedgerService(txnRepo))

	token := "eyJpZCI6NDB9"
	txnRepo.On("ListTransactions", ctx, 50, &token).Return([]domain.Transaction{
		{GiftID: 40, Kind: domain.KindGift, Status: domain.StatusCompleted, GrossAmount: decimal.NewFromInt(150)},
	}, "eyJpZCI6NDF9", nil).Once()

	resp, err := svc.ListTransactions(ctx, dto.ListTransactionsParams{Limit: 50, NextToken: &token})

	require.NoError(t, err)
	require.Len(t, resp.Transactions, 1)
	require.NotNil(t, resp.NextToken)
	assert.Equal(t, "eyJpZCI6NDF9", *resp.NextToken)
}
