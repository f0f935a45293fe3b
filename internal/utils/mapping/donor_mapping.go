package mapping

import (
	"github.com/civicgift/donate-backend/internal/core/domain"
	"github.com/civicgift/donate-backend/internal/models"
)

// ToModelPendingDonor converts a domain PendingDonor to its table model.
func ToModelPendingDonor(d domain.PendingDonor) models.PendingDonor {
	m := models.PendingDonor{
		ID:               d.ID,
		GiftID:           d.GiftID,
		GiftSearchableID: d.GiftSearchableID,
		CampaignID:       d.CampaignID,
		EmailAddress:     d.EmailAddress,
		FirstName:        d.FirstName,
		LastName:         d.LastName,
		Address:          d.Address,
		City:             d.City,
		State:            d.State,
		Zipcode:          d.Zipcode,
		PhoneNumber:      d.PhoneNumber,
		TimesViewed:      d.TimesViewed,
	}
	if d.CustomerID != "" {
		m.CustomerID = &d.CustomerID
	}
	return m
}

// ToDomainPendingDonor converts a pending donor table row to the domain type.
func ToDomainPendingDonor(m models.PendingDonor) domain.PendingDonor {
	d := domain.PendingDonor{
		ID:               m.ID,
		GiftID:           m.GiftID,
		GiftSearchableID: m.GiftSearchableID,
		CampaignID:       m.CampaignID,
		EmailAddress:     m.EmailAddress,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Address:          m.Address,
		City:             m.City,
		State:            m.State,
		Zipcode:          m.Zipcode,
		PhoneNumber:      m.PhoneNumber,
		TimesViewed:      m.TimesViewed,
	}
	if m.CustomerID != nil {
		d.CustomerID = *m.CustomerID
	}
	return d
}
