package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the category of a ledger entry on a gift.
type TransactionKind string

const (
	KindGift          TransactionKind = "Gift"
	KindCorrection    TransactionKind = "Correction"
	KindRefund        TransactionKind = "Refund"
	KindDepositToBank TransactionKind = "Deposit to Bank"
	KindBounced       TransactionKind = "Bounced"
	KindVoid          TransactionKind = "Void"
	KindDispute       TransactionKind = "Dispute"
	KindNote          TransactionKind = "Note"
	KindFine          TransactionKind = "Fine"
)

// TransactionStatus is the outcome recorded on a ledger entry.
type TransactionStatus string

const (
	StatusAccepted     TransactionStatus = "Accepted"
	StatusCompleted    TransactionStatus = "Completed"
	StatusDeclined     TransactionStatus = "Declined"
	StatusDenied       TransactionStatus = "Denied"
	StatusFailed       TransactionStatus = "Failed"
	StatusForced       TransactionStatus = "Forced"
	StatusLost         TransactionStatus = "Lost"
	StatusRefused      TransactionStatus = "Refused"
	StatusRequested    TransactionStatus = "Requested"
	StatusWon          TransactionStatus = "Won"
	StatusThankYouSent TransactionStatus = "Thank You Sent"
)

var transactionKinds = map[TransactionKind]struct{}{
	KindGift: {}, KindCorrection: {}, KindRefund: {}, KindDepositToBank: {},
	KindBounced: {}, KindVoid: {}, KindDispute: {}, KindNote: {}, KindFine: {},
}

var transactionStatuses = map[TransactionStatus]struct{}{
	StatusAccepted: {}, StatusCompleted: {}, StatusDeclined: {}, StatusDenied: {},
	StatusFailed: {}, StatusForced: {}, StatusLost: {}, StatusRefused: {},
	StatusRequested: {}, StatusWon: {}, StatusThankYouSent: {},
}

// IsValid reports whether the kind is a known transaction kind.
func (k TransactionKind) IsValid() bool {
	_, ok := transactionKinds[k]
	return ok
}

// IsValid reports whether the status is a known transaction status.
func (s TransactionStatus) IsValid() bool {
	_, ok := transactionStatuses[s]
	return ok
}

// Transaction is one immutable ledger entry belonging to exactly one gift,
// ordered by Date. GrossAmount is the cumulative running balance on the gift
// after this entry, not a per-event delta; it is derived from the previous
// entry and must be rebuilt, not trusted, whenever a reconciliation gap is
// suspected.
type Transaction struct {
	ID               int64             `json:"id"`
	GiftID           int64             `json:"giftID"`
	Date             time.Time         `json:"date"`
	ReceiptSentAt    *time.Time        `json:"receiptSentAt"`
	EnactedByAgentID *int64            `json:"enactedByAgentID"`
	Kind             TransactionKind   `json:"kind"`
	Status           TransactionStatus `json:"status"`
	ReferenceNumber  string            `json:"referenceNumber"` // processor sale/dispute id, or bank/check reference
	GrossAmount      decimal.Decimal   `json:"grossAmount"`
	Fee              decimal.Decimal   `json:"fee"`
	Notes            string            `json:"notes"`
}
