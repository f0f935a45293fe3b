package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/civicgift/donate-backend/internal/core/domain"
)

// DonorDetails carries the contact fields captured on the donation form.
// They feed donor matching, not authentication.
type DonorDetails struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
}

// BillingAddress is required for methods that bill a credit card.
type BillingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
}

// CreateDonationRequest is the public web donation payload. The nonce comes
// from the hosted-fields front-end.
type CreateDonationRequest struct {
	Amount             decimal.Decimal           `json:"amount" binding:"required"`
	GivenTo            domain.BeneficiaryAccount `json:"givenTo" binding:"required,beneficiary"`
	CampaignID         *int64                    `json:"campaignID"`
	PaymentMethodNonce string                    `json:"paymentMethodNonce" binding:"required"`
	Recurring          bool                      `json:"recurring"`
	Donor              DonorDetails              `json:"donor" binding:"required"`
	Billing            BillingAddress            `json:"billing"`
}

// CreateAdminDonationRequest records a donation entered by staff. Processor
// methods need a nonce; check-like methods need the date the instrument was
// received and its reference number.
type CreateAdminDonationRequest struct {
	MethodUsed         string                    `json:"methodUsed" binding:"required"`
	Amount             decimal.Decimal           `json:"amount" binding:"required"`
	GivenTo            domain.BeneficiaryAccount `json:"givenTo" binding:"required,beneficiary"`
	CampaignID         *int64                    `json:"campaignID"`
	PaymentMethodNonce string                    `json:"paymentMethodNonce"`
	ReferenceNumber    string                    `json:"referenceNumber"`
	DateOfMethodUsed   *time.Time                `json:"dateOfMethodUsed"`
	UserID             *int64                    `json:"userID"` // set when the donor is already known
	Donor              DonorDetails              `json:"donor" binding:"required"`
	Billing            BillingAddress            `json:"billing"`
}

// DonationResponse reports the committed state of a new donation.
type DonationResponse struct {
	GiftID          string          `json:"giftID"` // searchable uuid, hex encoded
	ReferenceNumber string          `json:"referenceNumber"`
	Status          string          `json:"status"`
	Amount          decimal.Decimal `json:"amount"`
	Recurring       bool            `json:"recurring"`
}
