package services

import (
	"context"

	"github.com/google/uuid"

	portsrepo "github.com/civicgift/donate-backend/internal/core/ports/repositories"
	portssvc "github.com/civicgift/donate-backend/internal/core/ports/services"
	"github.com/civicgift/donate-backend/internal/dto"
)

// giftService serves the read endpoints over gifts and their histories.
type giftService struct {
	giftRepo portsrepo.GiftRepositoryFacade
	ledger   *LedgerService
}

// NewGiftService creates a new GiftService.
func NewGiftService(giftRepo portsrepo.GiftRepositoryFacade, ledger *LedgerService) portssvc.GiftSvcFacade {
	return &giftService{giftRepo: giftRepo, ledger: ledger}
}

var _ portssvc.GiftSvcFacade = (*giftService)(nil)

// GetGift retrieves a gift with its full transaction history.
func (s *giftService) GetGift(ctx context.Context, searchableID uuid.UUID) (*dto.GetGiftResponse, error) {
	gift, err := s.giftRepo.FindGiftBySearchableID(ctx, searchableID)
	if err != nil {
		return nil, err
	}
	history, err := s.ledger.History(ctx, gift.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.GetGiftResponse{
		Gift: dto.GiftResponse{
			GiftID:       gift.SearchableID.String(),
			GivenTo:      string(gift.GivenTo),
			MethodUsedID: gift.MethodUsedID,
			CampaignID:   gift.CampaignID,
			Recurring:    gift.RecurringSubscriptionID != nil,
		},
		Transactions: dto.ToTransactionResponses(history),
	}
	if len(history) > 0 {
		latest := history[len(history)-1]
		resp.Gift.LatestStatus = string(latest.Status)
		resp.Gift.LatestAmount = latest.GrossAmount
		date := latest.Date
		resp.Gift.LatestDate = &date
	}
	return resp, nil
}

// ListGifts retrieves a paginated list of gifts.
func (s *giftService) ListGifts(ctx context.Context, params dto.ListGiftsParams) (*dto.ListGiftsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	gifts, nextToken, err := s.giftRepo.ListGifts(ctx, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	resp := &dto.ListGiftsResponse{
		Gifts:     make([]dto.GiftResponse, 0, len(gifts)),
		NextToken: nextToken,
	}
	for i := range gifts {
		resp.Gifts = append(resp.Gifts, dto.ToGiftResponse(&gifts[i]))
	}
	return resp, nil
}

// ListTransactions retrieves a paginated list of transactions across gifts.
func (s *giftService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	txns, nextToken, err := s.ledger.transactionRepo.ListTransactions(ctx, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}
