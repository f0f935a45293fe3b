package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction mirrors the transaction table. GrossAmount is the running
// total of the owning gift after this entry, not the entry's own delta.
type Transaction struct {
	ID               int64           `json:"id"`
	GiftID           int64           `json:"giftID"`
	DateInUTC        time.Time       `json:"dateInUTC"`
	ReceiptSentInUTC *time.Time      `json:"receiptSentInUTC"`
	EnactedByAgentID *int64          `json:"enactedByAgentID"`
	Kind             string          `json:"kind"`
	Status           string          `json:"status"`
	ReferenceNumber  string          `json:"referenceNumber"`
	GrossAmount      decimal.Decimal `json:"grossAmount"`
	Fee              decimal.Decimal `json:"fee"`
	Notes            *string         `json:"notes"`
}
