package services

import "context"

// WebhookSvcFacade reconciles processor webhook deliveries against the
// ledger.
type WebhookSvcFacade interface {
	// HandleSubscriptionEvent verifies the delivery signature, then applies
	// the subscription billing outcome to the owning gift. A bad signature
	// is returned as clients.ErrInvalidSignature; every other failure is
	// logged by the caller and acknowledged.
	HandleSubscriptionEvent(ctx context.Context, signature, payload string) error
}
