package dto

import "github.com/shopspring/decimal"

// ThankYouItemResponse is one gift awaiting a thank-you letter.
type ThankYouItemResponse struct {
	MarkerID    int64           `json:"markerID"`
	GiftID      string          `json:"giftID"`
	GivenTo     string          `json:"givenTo"`
	GrossAmount decimal.Decimal `json:"grossAmount"`
}

// ListThankYouResponse is the full letter queue.
type ListThankYouResponse struct {
	Items []ThankYouItemResponse `json:"items"`
}
