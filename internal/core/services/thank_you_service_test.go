package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/civicgift/donate-backend/internal/core/domain"
	"github.com/civicgift/donate-backend/internal/core/services"
)

func newThankYouFixture() (*MockThankYouRepository, *MockGiftRepository, *MockTransactionRepository, *MockAgentService) {
	return new(MockThankYouRepository), new(MockGiftRepository), new(MockTransactionRepository), new(MockAgentService)
}

func TestThankYouListQueue(t *testing.T) {
	ctx := context.Background()
	thankYouRepo, giftRepo, txnRepo, agentSvc := newThankYouFixture()
	svc := services.NewThankYouService(thankYouRepo, giftRepo, services.NewLedgerService(txnRepo), agentSvc)

	searchableID := uuid.New()
	thankYouRepo.On("ListThankYouMarkers", ctx).Return([]domain.ThankYouMarker{{ID: 1, GiftID: 40}}, nil).Once()
	giftRepo.On("FindGiftByID", ctx, int64(40)).
		Return(&domain.Gift{ID: 40, SearchableID: searchableID, GivenTo: domain.AccountAction}, nil).Once()
	txnRepo.On("FindLatestTransactionByGiftID", ctx, int64(40)).
		Return(&domain.Transaction{GiftID: 40, GrossAmount: decimal.NewFromInt(150)}, nil).Once()

	resp, err := svc.ListQueue(ctx)

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(1), resp.Items[0].MarkerID)
	assert.Equal(t, searchableID.String(), resp.Items[0].GiftID)
	assert.True(t, decimal.NewFromInt(150).Equal(resp.Items[0].GrossAmount))
}

func TestThankYouMarkSent(t *testing.T) {
	ctx := context.Background()
	thankYouRepo, giftRepo, txnRepo, agentSvc := newThankYouFixture()
	svc := services.NewThankYouService(thankYouRepo, giftRepo, services.NewLedgerService(txnRepo), agentSvc)

	latest := &domain.Transaction{
		ID:              77,
		GiftID:          40,
		Kind:            domain.KindGift,
		Status:          domain.StatusCompleted,
		ReferenceNumber: "sale_1",
		GrossAmount:     decimal.NewFromInt(150),
	}
	thankYouRepo.On("FindThankYouMarkerByID", ctx, int64(1)).
		Return(&domain.ThankYouMarker{ID: 1, GiftID: 40}, nil).Once()
	txnRepo.On("FindLatestTransactionByGiftID", ctx, int64(40)).Return(latest, nil).Once()
	agentSvc.On("ResolveStaffAgent", ctx, int64(3)).
		Return(&domain.Agent{ID: 3, Type: domain.AgentStaff}, nil).Once()

	thankYouRepo.On("Begin", ctx).Return(nil, nil).Once()
	thankYouRepo.On("Rollback", ctx, nil).Return(nil).Maybe()
	txnRepo.On("UpdateReceiptSentAt", ctx, nil, int64(77), mock.Anything).Return(nil).Once()
	// The note entry keeps the running total where it was.
	txnRepo.On("SaveTransaction", ctx, nil, mock.MatchedBy(func(txn *domain.Transaction) bool {
		return txn.Kind == domain.KindNote &&
			txn.Status == domain.StatusThankYouSent &&
			txn.ReferenceNumber == "sale_1" &&
			txn.GrossAmount.Equal(decimal.NewFromInt(150))
	})).Return(nil).Once()
	thankYouRepo.On("DeleteThankYouMarker", ctx, nil, int64(1)).Return(nil).Once()
	thankYouRepo.On("Commit", ctx, nil).Return(nil).Once()

	err := svc.MarkSent(ctx, 1, 3)

	require.NoError(t, err)
	thankYouRepo.AssertExpectations(t)
	txnRepo.AssertExpectations(t)
}

func TestThankYouMarkSentNeedsHistory(t *testing.T) {
	ctx := context.Background()
	thankYouRepo, giftRepo, txnRepo, agentSvc := newThankYouFixture()
	svc := services.NewThankYouService(thankYouRepo, giftRepo, services.NewLedgerService(txnRepo), agentSvc)

	thankYouRepo.On("FindThankYouMarkerByID", ctx, int64(1)).
		Return(&domain.ThankYouMarker{ID: 1, GiftID: 40}, nil).Once()
	txnRepo.On("FindLatestTransactionByGiftID", ctx, int64(40)).Return(nil, nil).Once()

	err := svc.MarkSent(ctx, 1, 3)

	assert.ErrorIs(t, err, services.ErrNoHistoryForLetter)
	thankYouRepo.AssertNotCalled(t, "Begin", mock.Anything)
}
