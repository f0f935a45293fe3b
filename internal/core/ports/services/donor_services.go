package services

import (
	"context"

	"github.com/civicgift/donate-backend/internal/dto"
)

// DonorMatchingSvc runs the asynchronous donor matching pipeline.
type DonorMatchingSvc interface {
	// EnqueueMatch schedules matching for a gift's queued donor. Called
	// after the donation commits.
	EnqueueMatch(ctx context.Context, giftID int64) error

	// MatchQueuedDonor resolves one queued donor against the user
	// directory: a single exact email + last name match resolves the gift
	// to that user, anything else cages the donor for manual review.
	MatchQueuedDonor(ctx context.Context, queuedDonorID int64) error
}

// CagedDonorAdminSvc serves the manual caged donor review queue.
type CagedDonorAdminSvc interface {
	// ListCagedDonors retrieves a page of caged donors.
	ListCagedDonors(ctx context.Context, params dto.ListCagedDonorsParams) (*dto.ListCagedDonorsResponse, error)

	// ViewCagedDonor retrieves one caged donor and bumps its review counter.
	ViewCagedDonor(ctx context.Context, id int64) (*dto.CagedDonorResponse, error)

	// ResolveCagedDonor attaches a caged donor to an existing or newly
	// created directory user, rewrites the gift's donor reference and
	// removes the caged row.
	ResolveCagedDonor(ctx context.Context, id int64, req dto.ResolveCagedDonorRequest) error
}

// DonorSvcFacade combines all donor service interfaces
type DonorSvcFacade interface {
	DonorMatchingSvc
	CagedDonorAdminSvc
}
