package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/civicgift/donate-backend/internal/core/domain"
)

// TransactionResponse defines the data returned for one ledger transaction.
type TransactionResponse struct {
	ID              int64           `json:"id"`
	Date            time.Time       `json:"date"`
	Kind            string          `json:"kind"`
	Status          string          `json:"status"`
	ReferenceNumber string          `json:"referenceNumber"`
	GrossAmount     decimal.Decimal `json:"grossAmount"`
	Fee             decimal.Decimal `json:"fee"`
	Notes           string          `json:"notes,omitempty"`
	ReceiptSentAt   *time.Time      `json:"receiptSentAt,omitempty"`
}

// GiftResponse defines the data returned for a gift head record plus the
// fields derived from its most recent transaction.
type GiftResponse struct {
	GiftID       string          `json:"giftID"`
	GivenTo      string          `json:"givenTo"`
	MethodUsedID int16           `json:"methodUsedID"`
	CampaignID   *int64          `json:"campaignID"`
	Recurring    bool            `json:"recurring"`
	LatestStatus string          `json:"latestStatus,omitempty"`
	LatestAmount decimal.Decimal `json:"latestAmount"`
	LatestDate   *time.Time      `json:"latestDate,omitempty"`
}

// GetGiftResponse combines a gift with its full transaction history.
type GetGiftResponse struct {
	Gift         GiftResponse          `json:"gift"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ListGiftsParams controls token-based pagination of gift listings.
type ListGiftsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListGiftsResponse is one page of gifts.
type ListGiftsResponse struct {
	Gifts     []GiftResponse `json:"gifts"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ListTransactionsParams controls token-based pagination of transaction listings.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is one page of transactions across gifts.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              txn.ID,
		Date:            txn.Date,
		Kind:            string(txn.Kind),
		Status:          string(txn.Status),
		ReferenceNumber: txn.ReferenceNumber,
		GrossAmount:     txn.GrossAmount,
		Fee:             txn.Fee,
		Notes:           txn.Notes,
		ReceiptSentAt:   txn.ReceiptSentAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ToGiftResponse converts a gift with derived fields to its DTO.
func ToGiftResponse(g *domain.GiftWithLatest) GiftResponse {
	return GiftResponse{
		GiftID:       g.SearchableID.String(),
		GivenTo:      string(g.GivenTo),
		MethodUsedID: g.MethodUsedID,
		CampaignID:   g.CampaignID,
		Recurring:    g.RecurringSubscriptionID != nil,
		LatestStatus: string(g.LatestStatus),
		LatestAmount: g.LatestAmount,
		LatestDate:   g.LatestDate,
	}
}
