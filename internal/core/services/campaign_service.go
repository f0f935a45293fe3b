package services

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/civicgift/donate-backend/internal/core/domain"
	portsrepo "github.com/civicgift/donate-backend/internal/core/ports/repositories"
	portssvc "github.com/civicgift/donate-backend/internal/core/ports/services"
	"github.com/civicgift/donate-backend/internal/dto"
	"github.com/civicgift/donate-backend/internal/middleware"
)

// campaignService manages fundraising campaigns and their suggested amounts.
type campaignService struct {
	campaignRepo portsrepo.CampaignRepositoryFacade
}

// NewCampaignService creates a new CampaignService.
func NewCampaignService(campaignRepo portsrepo.CampaignRepositoryFacade) portssvc.CampaignSvcFacade {
	return &campaignService{campaignRepo: campaignRepo}
}

var _ portssvc.CampaignSvcFacade = (*campaignService)(nil)

// CreateCampaign persists a new campaign with its suggested amounts.
func (s *campaignService) CreateCampaign(ctx context.Context, req dto.CreateCampaignRequest) (*dto.CampaignResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	campaign := domain.Campaign{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
		IsDefault:   req.IsDefault,
	}
	if err := s.campaignRepo.SaveCampaign(ctx, &campaign); err != nil {
		return nil, err
	}
	if len(req.Amounts) > 0 {
		if err := s.campaignRepo.ReplaceAmounts(ctx, campaign.ID, amountRows(campaign.ID, req.Amounts)); err != nil {
			return nil, err
		}
	}

	logger.Info("Campaign created", slog.Int64("campaign_id", campaign.ID), slog.String("name", campaign.Name))
	return s.GetCampaign(ctx, campaign.ID)
}

// UpdateCampaign updates campaign fields and replaces its amounts when given.
func (s *campaignService) UpdateCampaign(ctx context.Context, campaignID int64, req dto.UpdateCampaignRequest) (*dto.CampaignResponse, error) {
	campaign, err := s.campaignRepo.FindCampaignByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		campaign.Name = *req.Name
	}
	if req.Description != nil {
		campaign.Description = *req.Description
	}
	if req.IsActive != nil {
		campaign.IsActive = *req.IsActive
	}
	if err := s.campaignRepo.UpdateCampaign(ctx, *campaign); err != nil {
		return nil, err
	}
	if req.Amounts != nil {
		if err := s.campaignRepo.ReplaceAmounts(ctx, campaignID, amountRows(campaignID, req.Amounts)); err != nil {
			return nil, err
		}
	}
	return s.GetCampaign(ctx, campaignID)
}

// GetCampaign retrieves one campaign with its suggested amounts.
func (s *campaignService) GetCampaign(ctx context.Context, campaignID int64) (*dto.CampaignResponse, error) {
	campaign, err := s.campaignRepo.FindCampaignByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	amounts, err := s.campaignRepo.FindAmountsByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToCampaignResponse(campaign, amounts)
	return &resp, nil
}

// ListCampaigns retrieves campaigns, optionally only active ones.
func (s *campaignService) ListCampaigns(ctx context.Context, activeOnly bool) ([]dto.CampaignResponse, error) {
	campaigns, err := s.campaignRepo.ListCampaigns(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		amounts, err := s.campaignRepo.FindAmountsByCampaignID(ctx, campaigns[i].ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, dto.ToCampaignResponse(&campaigns[i], amounts))
	}
	return responses, nil
}

func amountRows(campaignID int64, amounts []decimal.Decimal) []domain.CampaignAmount {
	rows := make([]domain.CampaignAmount, 0, len(amounts))
	for i, amount := range amounts {
		rows = append(rows, domain.CampaignAmount{
			CampaignID: campaignID,
			Amount:     amount,
			Weight:     i,
		})
	}
	return rows
}
