package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/civicgift/donate-backend/internal/dto"
)

// GiftReaderSvc defines read operations over gifts and their histories.
type GiftReaderSvc interface {
	// GetGift retrieves a gift by searchable id with its full transaction
	// history.
	GetGift(ctx context.Context, searchableID uuid.UUID) (*dto.GetGiftResponse, error)

	// ListGifts retrieves a paginated list of gifts.
	ListGifts(ctx context.Context, params dto.ListGiftsParams) (*dto.ListGiftsResponse, error)

	// ListTransactions retrieves a paginated list of transactions across
	// all gifts.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// GiftSvcFacade combines all gift read service interfaces
type GiftSvcFacade interface {
	GiftReaderSvc
}
