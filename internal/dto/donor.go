package dto

import (
	"github.com/civicgift/donate-backend/internal/core/domain"
)

// CagedDonorResponse defines the data returned for one caged donor.
type CagedDonorResponse struct {
	ID           int64  `json:"id"`
	GiftID       string `json:"giftID"` // searchable uuid of the gift
	CustomerID   string `json:"customerID,omitempty"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zipcode      string `json:"zipcode"`
	PhoneNumber  string `json:"phoneNumber"`
	TimesViewed  int    `json:"timesViewed"`
}

// ListCagedDonorsParams controls token-based pagination of the caged donor queue.
type ListCagedDonorsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListCagedDonorsResponse is one page of caged donors.
type ListCagedDonorsResponse struct {
	Donors    []CagedDonorResponse `json:"donors"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// ResolveCagedDonorRequest attaches a caged donor to a directory user.
// Exactly one of UserID or NewUser must be set: UserID links an existing
// directory record, NewUser registers one first.
type ResolveCagedDonorRequest struct {
	UserID  *int64                `json:"userID"`
	NewUser *domain.DirectoryUser `json:"newUser"`
}

// ToCagedDonorResponse converts a pending donor row to its DTO.
func ToCagedDonorResponse(d *domain.PendingDonor) CagedDonorResponse {
	return CagedDonorResponse{
		ID:           d.ID,
		GiftID:       d.GiftSearchableID.String(),
		CustomerID:   d.CustomerID,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		EmailAddress: d.EmailAddress,
		Address:      d.Address,
		City:         d.City,
		State:        d.State,
		Zipcode:      d.Zipcode,
		PhoneNumber:  d.PhoneNumber,
		TimesViewed:  d.TimesViewed,
	}
}
