package dto

import (
	"github.com/shopspring/decimal"

	"github.com/civicgift/donate-backend/internal/core/domain"
)

// CreateCampaignRequest defines the payload for creating a campaign.
type CreateCampaignRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	IsActive    bool              `json:"isActive"`
	IsDefault   bool              `json:"isDefault"`
	Amounts     []decimal.Decimal `json:"amounts"`
}

// UpdateCampaignRequest defines the payload for updating a campaign.
type UpdateCampaignRequest struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	IsActive    *bool             `json:"isActive"`
	Amounts     []decimal.Decimal `json:"amounts"`
}

// CampaignResponse defines the data returned for a campaign.
type CampaignResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	IsActive    bool              `json:"isActive"`
	IsDefault   bool              `json:"isDefault"`
	Amounts     []decimal.Decimal `json:"amounts"`
}

// ToCampaignResponse converts a campaign and its suggested amounts to a DTO.
func ToCampaignResponse(c *domain.Campaign, amounts []domain.CampaignAmount) CampaignResponse {
	resp := CampaignResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		IsDefault:   c.IsDefault,
	}
	for _, a := range amounts {
		resp.Amounts = append(resp.Amounts, a.Amount)
	}
	return resp
}
