package domain

// ThankYouMarker queues a gift for a thank-you letter once its running total
// crosses the configured threshold.
type ThankYouMarker struct {
	ID     int64 `json:"id"`
	GiftID int64 `json:"giftID"`
}
