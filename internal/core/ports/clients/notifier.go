package clients

import "context"

// ReceiptEmail is the data a donor receipt is rendered from.
type ReceiptEmail struct {
	ToEmail       string
	FirstName     string
	LastName      string
	Amount        string
	TransactionID string
	GiftUUID      string
	Recurring     bool
}

// Notifier sends operational email. Failures after a committed donation are
// logged and never unwind the ledger write.
type Notifier interface {
	// SendReceipt emails a donation receipt to the donor.
	SendReceipt(ctx context.Context, receipt ReceiptEmail) error

	// SendAdminNotice emails the operations inbox.
	SendAdminNotice(ctx context.Context, subject, body string) error

	// SendReportSummary emails the reconciliation summary with links to the
	// uploaded report files.
	SendReportSummary(ctx context.Context, subject string, reportURLs map[string]string) error
}
