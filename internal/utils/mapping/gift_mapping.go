package mapping

import (
	"github.com/civicgift/donate-backend/internal/core/domain"
	"github.com/civicgift/donate-backend/internal/models"
)

// ToModelGift converts a domain Gift to its table model, encoding the donor
// reference back into the legacy user_id column.
func ToModelGift(d domain.Gift) models.Gift {
	m := models.Gift{
		ID:                      d.ID,
		SearchableID:            d.SearchableID,
		UserID:                  d.Donor.Encode(),
		CampaignID:              d.CampaignID,
		MethodUsedID:            d.MethodUsedID,
		SourcedFromAgentID:      d.SourcedFromAgentID,
		GivenTo:                 string(d.GivenTo),
		RecurringSubscriptionID: d.RecurringSubscriptionID,
	}
	if d.CustomerID != "" {
		m.CustomerID = &d.CustomerID
	}
	return m
}

// ToDomainGift converts a gift table row to the domain type, decoding the
// donor sentinel once at this boundary.
func ToDomainGift(m models.Gift) domain.Gift {
	d := domain.Gift{
		ID:                      m.ID,
		SearchableID:            m.SearchableID,
		Donor:                   domain.DecodeDonorRef(m.UserID),
		CampaignID:              m.CampaignID,
		MethodUsedID:            m.MethodUsedID,
		SourcedFromAgentID:      m.SourcedFromAgentID,
		GivenTo:                 domain.BeneficiaryAccount(m.GivenTo),
		RecurringSubscriptionID: m.RecurringSubscriptionID,
	}
	if m.CustomerID != nil {
		d.CustomerID = *m.CustomerID
	}
	return d
}
