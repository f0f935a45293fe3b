package models

import "github.com/google/uuid"

// PendingDonor mirrors both the queued_donor and caged_donor tables, which
// share one shape. A donor row lives in exactly one of the two tables.
type PendingDonor struct {
	ID               int64     `json:"id"`
	GiftID           int64     `json:"giftID"`
	GiftSearchableID uuid.UUID `json:"giftSearchableID"`
	CampaignID       *int64    `json:"campaignID"`
	CustomerID       *string   `json:"customerID"`
	EmailAddress     string    `json:"emailAddress"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	Zipcode          string    `json:"zipcode"`
	PhoneNumber      string    `json:"phoneNumber"`
	TimesViewed      int       `json:"timesViewed"`
}
