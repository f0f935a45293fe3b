package models

import "github.com/shopspring/decimal"

// Campaign mirrors the campaign table.
type Campaign struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	IsDefault   bool   `json:"isDefault"`
}

// CampaignAmount mirrors the campaign_amounts table.
type CampaignAmount struct {
	ID         int64           `json:"id"`
	CampaignID int64           `json:"campaignID"`
	Amount     decimal.Decimal `json:"amount"`
	Weight     int             `json:"weight"`
}
