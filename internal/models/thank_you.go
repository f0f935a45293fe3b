package models

// ThankYouMarker mirrors the gift_thank_you_letter table.
type ThankYouMarker struct {
	ID     int64 `json:"id"`
	GiftID int64 `json:"giftID"`
}
