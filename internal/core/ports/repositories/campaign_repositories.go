package repositories

import (
	"context"

	"github.com/civicgift/donate-backend/internal/core/domain"
)

// CampaignReader defines read operations for campaign data
type CampaignReader interface {
	// FindCampaignByID retrieves a campaign by id.
	FindCampaignByID(ctx context.Context, campaignID int64) (*domain.Campaign, error)

	// FindDefaultCampaign retrieves the campaign marked as default.
	FindDefaultCampaign(ctx context.Context) (*domain.Campaign, error)

	// ListCampaigns retrieves campaigns, optionally only active ones.
	ListCampaigns(ctx context.Context, activeOnly bool) ([]domain.Campaign, error)

	// FindAmountsByCampaignID retrieves the suggested amounts of a campaign
	// ordered by weight.
	FindAmountsByCampaignID(ctx context.Context, campaignID int64) ([]domain.CampaignAmount, error)
}

// CampaignWriter defines write operations for campaign data
type CampaignWriter interface {
	// SaveCampaign persists a new campaign.
	SaveCampaign(ctx context.Context, campaign *domain.Campaign) error

	// UpdateCampaign updates name, description and flags.
	UpdateCampaign(ctx context.Context, campaign domain.Campaign) error

	// ReplaceAmounts swaps the full suggested-amount set of a campaign.
	ReplaceAmounts(ctx context.Context, campaignID int64, amounts []domain.CampaignAmount) error
}

// CampaignRepositoryFacade combines all campaign-related repository interfaces
type CampaignRepositoryFacade interface {
	CampaignReader
	CampaignWriter
}
