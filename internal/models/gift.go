package models

import "github.com/google/uuid"

// Gift mirrors the gift table. UserID stores the encoded donor reference:
// a positive directory user id, or one of the caged/queued/unknown
// sentinels.
type Gift struct {
	ID                      int64     `json:"id"`
	SearchableID            uuid.UUID `json:"searchableID"`
	UserID                  int64     `json:"userID"`
	CampaignID              *int64    `json:"campaignID"`
	CustomerID              *string   `json:"customerID"`
	MethodUsedID            int16     `json:"methodUsedID"`
	SourcedFromAgentID      *int64    `json:"sourcedFromAgentID"`
	GivenTo                 string    `json:"givenTo"`
	RecurringSubscriptionID *string   `json:"recurringSubscriptionID"`
}
