package services

import (
	"context"

	"github.com/civicgift/donate-backend/internal/dto"
)

// ThankYouSvcFacade serves the thank-you letter queue.
type ThankYouSvcFacade interface {
	// ListQueue retrieves gifts awaiting a letter.
	ListQueue(ctx context.Context) (*dto.ListThankYouResponse, error)

	// MarkSent records that the letter went out: stamps the receipt time on
	// the latest transaction, appends a ThankYouSent note and removes the
	// marker.
	MarkSent(ctx context.Context, markerID int64, agentUserID int64) error
}
