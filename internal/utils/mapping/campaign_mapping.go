package mapping

import (
	"github.com/civicgift/donate-backend/internal/core/domain"
	"github.com/civicgift/donate-backend/internal/models"
)

// ToDomainCampaign converts a campaign table row to the domain type.
func ToDomainCampaign(m models.Campaign) domain.Campaign {
	return domain.Campaign{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		IsDefault:   m.IsDefault,
	}
}

// ToDomainCampaignAmount converts a campaign_amounts row to the domain type.
func ToDomainCampaignAmount(m models.CampaignAmount) domain.CampaignAmount {
	return domain.CampaignAmount{
		ID:         m.ID,
		CampaignID: m.CampaignID,
		Amount:     m.Amount,
		Weight:     m.Weight,
	}
}
