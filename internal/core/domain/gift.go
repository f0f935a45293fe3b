package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BeneficiaryAccount identifies the funding destination of a gift.
type BeneficiaryAccount string

const (
	AccountABI     BeneficiaryAccount = "ABI"
	AccountAction  BeneficiaryAccount = "ACTION"
	AccountBeck    BeneficiaryAccount = "BECK"
	AccountGreen   BeneficiaryAccount = "GREEN"
	AccountInter   BeneficiaryAccount = "INTER"
	AccountMCRI    BeneficiaryAccount = "MCRI"
	AccountNERF    BeneficiaryAccount = "NERF"
	AccountPUSA    BeneficiaryAccount = "P-USA"
	AccountProd    BeneficiaryAccount = "PROD"
	AccountUnres   BeneficiaryAccount = "UNRES"
	AccountVideo   BeneficiaryAccount = "VIDEO"
	AccountTBD     BeneficiaryAccount = "TBD"
	AccountSupport BeneficiaryAccount = "SUPPORT"
)

var beneficiaryAccounts = map[BeneficiaryAccount]struct{}{
	AccountABI: {}, AccountAction: {}, AccountBeck: {}, AccountGreen: {},
	AccountInter: {}, AccountMCRI: {}, AccountNERF: {}, AccountPUSA: {},
	AccountProd: {}, AccountUnres: {}, AccountVideo: {}, AccountTBD: {},
	AccountSupport: {},
}

// IsValid reports whether the account is a known funding destination.
func (b BeneficiaryAccount) IsValid() bool {
	_, ok := beneficiaryAccounts[b]
	return ok
}

// Gift is the head record for one donation relationship. Its status, amount
// and date are not stored; they are derived from the most recent transaction.
type Gift struct {
	ID                      int64              `json:"id"`
	SearchableID            uuid.UUID          `json:"searchableID"`
	Donor                   DonorRef           `json:"donor"`
	CampaignID              *int64             `json:"campaignID"`
	CustomerID              string             `json:"customerID"` // processor vault id, empty if not applicable
	MethodUsedID            int16              `json:"methodUsedID"`
	SourcedFromAgentID      *int64             `json:"sourcedFromAgentID"`
	GivenTo                 BeneficiaryAccount `json:"givenTo"`
	RecurringSubscriptionID *string            `json:"recurringSubscriptionID"`
}

// GiftWithLatest pairs a gift with the derived fields from its most recent
// transaction, for read endpoints.
type GiftWithLatest struct {
	Gift
	LatestStatus TransactionStatus `json:"latestStatus"`
	LatestAmount decimal.Decimal   `json:"latestAmount"`
	LatestDate   *time.Time        `json:"latestDate"`
}
