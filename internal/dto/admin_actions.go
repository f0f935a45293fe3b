package dto

import (
	"github.com/shopspring/decimal"

	"github.com/civicgift/donate-backend/internal/core/domain"
)

// RefundRequest refunds part or all of a settled sale.
type RefundRequest struct {
	ReferenceNumber string          `json:"referenceNumber" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
}

// VoidRequest cancels a sale that has not settled yet.
type VoidRequest struct {
	ReferenceNumber string `json:"referenceNumber" binding:"required"`
}

// CorrectionRequest reallocates a gift to another beneficiary account and,
// for recurring gifts, optionally changes the subscription amount.
type CorrectionRequest struct {
	GiftID    string                    `json:"giftID" binding:"required,uuid"`
	GivenTo   domain.BeneficiaryAccount `json:"givenTo" binding:"required,beneficiary"`
	NewAmount *decimal.Decimal          `json:"newAmount"`
}

// BouncedCheckRequest records that a previously deposited check bounced.
type BouncedCheckRequest struct {
	GiftID string `json:"giftID" binding:"required,uuid"`
	Notes  string `json:"notes"`
}

// ActionResponse reports the transaction appended by an admin action.
type ActionResponse struct {
	GiftID          string          `json:"giftID"`
	Kind            string          `json:"kind"`
	Status          string          `json:"status"`
	ReferenceNumber string          `json:"referenceNumber"`
	GrossAmount     decimal.Decimal `json:"grossAmount"`
}
