package services

import (
	"context"

	"github.com/civicgift/donate-backend/internal/dto"
)

// DonationWriterSvc defines the operations that create or amend donations.
type DonationWriterSvc interface {
	// CreateWebDonation processes a public donation form submission: vault
	// customer, sale or subscription, gift + transaction rows, queued donor,
	// receipt.
	CreateWebDonation(ctx context.Context, req dto.CreateDonationRequest) (*dto.DonationResponse, error)

	// CreateAdminDonation records a staff-entered donation. Check-like
	// methods write a Gift transaction dated at the instrument plus an
	// immediate bank deposit.
	CreateAdminDonation(ctx context.Context, req dto.CreateAdminDonationRequest, agentUserID int64) (*dto.DonationResponse, error)

	// RefundSale refunds up to the gift's current running total of a
	// settled sale and appends the Refund transaction.
	RefundSale(ctx context.Context, req dto.RefundRequest, agentUserID int64) (*dto.ActionResponse, error)

	// VoidSale cancels an unsettled sale and appends the Void transaction.
	VoidSale(ctx context.Context, req dto.VoidRequest, agentUserID int64) (*dto.ActionResponse, error)

	// CorrectGift reallocates a gift to another beneficiary account,
	// updating the subscription amount when one is given.
	CorrectGift(ctx context.Context, req dto.CorrectionRequest, agentUserID int64) (*dto.ActionResponse, error)

	// RecordBouncedCheck reverses a deposited check that failed to clear.
	RecordBouncedCheck(ctx context.Context, req dto.BouncedCheckRequest, agentUserID int64) (*dto.ActionResponse, error)
}

// DonationTokenSvc exposes the processor client token for the front-end.
type DonationTokenSvc interface {
	// GetClientToken returns a short-lived hosted-fields token.
	GetClientToken(ctx context.Context) (string, error)
}

// DonationSvcFacade combines all donation service interfaces
type DonationSvcFacade interface {
	DonationWriterSvc
	DonationTokenSvc
}
