package services

import (
	"context"

	"github.com/civicgift/donate-backend/internal/dto"
)

// CampaignSvcFacade manages campaigns and their suggested amounts.
type CampaignSvcFacade interface {
	// CreateCampaign persists a new campaign with its suggested amounts.
	CreateCampaign(ctx context.Context, req dto.CreateCampaignRequest) (*dto.CampaignResponse, error)

	// UpdateCampaign updates campaign fields and replaces its amounts when
	// given.
	UpdateCampaign(ctx context.Context, campaignID int64, req dto.UpdateCampaignRequest) (*dto.CampaignResponse, error)

	// GetCampaign retrieves one campaign with its suggested amounts.
	GetCampaign(ctx context.Context, campaignID int64) (*dto.CampaignResponse, error)

	// ListCampaigns retrieves campaigns, optionally only active ones.
	ListCampaigns(ctx context.Context, activeOnly bool) ([]dto.CampaignResponse, error)
}
