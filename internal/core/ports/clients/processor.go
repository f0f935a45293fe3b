package clients

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Sale statuses as reported by the payment processor.
const (
	SaleStatusAuthorized             = "authorized"
	SaleStatusAuthorizationExpired   = "authorization_expired"
	SaleStatusSubmittedForSettlement = "submitted_for_settlement"
	SaleStatusSettling               = "settling"
	SaleStatusSettled                = "settled"
	SaleStatusSettlementDeclined     = "settlement_declined"
	SaleStatusVoided                 = "voided"
	SaleStatusProcessorDeclined      = "processor_declined"
	SaleStatusGatewayRejected        = "gateway_rejected"
	SaleStatusFailed                 = "failed"
)

// Webhook kinds the reconciler understands.
const (
	WebhookSubscriptionChargedSuccessfully   = "subscription_charged_successfully"
	WebhookSubscriptionChargedUnsuccessfully = "subscription_charged_unsuccessfully"
	WebhookSubscriptionWentPastDue           = "subscription_went_past_due"
	WebhookSubscriptionExpired               = "subscription_expired"
)

// SaleCustomer carries the donor contact details the processor stored with
// a sale.
type SaleCustomer struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// StatusEvent is one entry of a sale's status history. Amount reflects the
// sale amount at the time of the event.
type StatusEvent struct {
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Amount    decimal.Decimal `json:"amount"`
}

// Sale is the processor's view of one payment transaction.
type Sale struct {
	ID                    string          `json:"id"`
	Type                  string          `json:"type"` // "sale" or "credit"
	Status                string          `json:"status"`
	Amount                decimal.Decimal `json:"amount"`
	ServiceFee            decimal.Decimal `json:"serviceFee"`
	MerchantAccountID     string          `json:"merchantAccountID"`
	PaymentInstrumentType string          `json:"paymentInstrumentType"` // "credit_card" or "paypal_account"
	Customer              SaleCustomer    `json:"customer"`
	SubscriptionID        string          `json:"subscriptionID"`
	RefundedTransactionID string          `json:"refundedTransactionID"` // set when this sale refunds another
	RefundIDs             []string        `json:"refundIDs"`
	CreatedAt             time.Time       `json:"createdAt"`
	DisbursementDate      *time.Time      `json:"disbursementDate"`
	StatusHistory         []StatusEvent   `json:"statusHistory"`
}

// IsRefund reports whether this sale represents money flowing back to the
// donor rather than in.
func (s Sale) IsRefund() bool {
	return s.Type == "credit" || s.RefundedTransactionID != ""
}

// DisputeStatusEvent is one entry of a dispute's status history.
type DisputeStatusEvent struct {
	Status        string    `json:"status"`
	EffectiveDate time.Time `json:"effectiveDate"`
}

// DisputeKindChargeback marks disputes the processor fines regardless of
// outcome.
const DisputeKindChargeback = "chargeback"

// Dispute is the processor's view of a chargeback or pre-arbitration case.
type Dispute struct {
	ID            string               `json:"id"`
	Kind          string               `json:"kind"`
	Status        string               `json:"status"`
	Reason        string               `json:"reason"`
	Amount        decimal.Decimal      `json:"amount"`
	TransactionID string               `json:"transactionID"` // the disputed sale
	ReceivedDate  time.Time            `json:"receivedDate"`
	StatusHistory []DisputeStatusEvent `json:"statusHistory"`
}

// WebhookNotification is a parsed, signature-verified webhook delivery.
type WebhookNotification struct {
	Kind         string    `json:"kind"`
	Timestamp    time.Time `json:"timestamp"`
	Subscription struct {
		ID           string `json:"id"`
		Transactions []Sale `json:"transactions"` // newest first
	} `json:"subscription"`
}

// CustomerInput creates a vault customer record.
type CustomerInput struct {
	FirstName          string
	LastName           string
	Email              string
	Phone              string
	PaymentMethodNonce string
}

// SaleInput creates a one-time sale.
type SaleInput struct {
	Amount             decimal.Decimal
	CustomerID         string
	PaymentMethodNonce string
	MerchantAccountID  string
	BillingPostalCode  string
}

// SubscriptionInput starts a recurring billing plan against a stored
// payment method.
type SubscriptionInput struct {
	PaymentMethodToken string
	PlanID             string
	Amount             decimal.Decimal
	MerchantAccountID  string
}

// SubscriptionUpdate carries the mutable fields of an active subscription.
// A nil Amount and empty PlanID/MerchantAccountID leave that field as it is.
type SubscriptionUpdate struct {
	Amount            *decimal.Decimal
	PlanID            string
	MerchantAccountID string
}

// DeclinedError reports a sale the processor rejected. Handlers surface it
// as an unprocessable request rather than a server fault.
type DeclinedError struct {
	Status  string
	Code    string
	Message string
}

func (e *DeclinedError) Error() string {
	return fmt.Sprintf("processor declined sale (%s/%s): %s", e.Status, e.Code, e.Message)
}

// ErrInvalidSignature is returned by ParseWebhook when the payload signature
// does not verify.
var ErrInvalidSignature = fmt.Errorf("webhook signature verification failed")

// Processor abstracts the payment gateway. The reconciliation engine never
// sees gateway wire formats, only these types.
type Processor interface {
	// GenerateClientToken returns a short-lived token for the hosted-fields
	// front-end.
	GenerateClientToken(ctx context.Context) (string, error)

	// CreateCustomer vaults the donor's payment method and returns the new
	// customer id.
	CreateCustomer(ctx context.Context, input CustomerInput) (string, error)

	// CreateSale charges a one-time sale and submits it for settlement.
	// Gateway rejections and processor declines are returned as
	// *DeclinedError.
	CreateSale(ctx context.Context, input SaleInput) (*Sale, error)

	// CreateSubscription starts recurring billing and returns the
	// subscription id along with the first sale when one was charged.
	CreateSubscription(ctx context.Context, input SubscriptionInput) (string, *Sale, error)

	// UpdateSubscription changes the amount, plan or merchant account of an
	// active subscription.
	UpdateSubscription(ctx context.Context, subscriptionID string, update SubscriptionUpdate) error

	// FindSale fetches one sale with its full status history.
	FindSale(ctx context.Context, saleID string) (*Sale, error)

	// Refund refunds the given amount of a settled sale.
	Refund(ctx context.Context, saleID string, amount decimal.Decimal) (*Sale, error)

	// Void cancels a sale that has not settled yet.
	Void(ctx context.Context, saleID string) (*Sale, error)

	// SearchSales returns sales whose given status timestamp falls inside
	// the window. statusField names one of the tracked or failure statuses,
	// for example "settled_at".
	SearchSales(ctx context.Context, statusField string, start, end time.Time) ([]Sale, error)

	// SearchDisputes returns disputes received inside the window.
	SearchDisputes(ctx context.Context, start, end time.Time) ([]Dispute, error)

	// ParseWebhook verifies the delivery signature and decodes the payload.
	// A bad signature is returned as ErrInvalidSignature.
	ParseWebhook(signature, payload string) (*WebhookNotification, error)
}
