package domain

import "github.com/shopspring/decimal"

// Campaign groups gifts under a fundraising drive and carries the suggested
// amounts shown by the front-end.
type Campaign struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	IsDefault   bool   `json:"isDefault"`
}

// CampaignAmount is one suggested donation amount on a campaign.
type CampaignAmount struct {
	ID         int64           `json:"id"`
	CampaignID int64           `json:"campaignID"`
	Amount     decimal.Decimal `json:"amount"`
	Weight     int             `json:"weight"`
}
