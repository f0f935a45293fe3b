package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/civicgift/donate-backend/internal/apperrors"
	"github.com/civicgift/donate-backend/internal/core/domain"
	"github.com/civicgift/donate-backend/internal/core/ports/clients"
)

// multiplierForKindStatus holds the sign applied to an entry's own amount
// when folding it into the gift's running total. Pairs not listed carry no
// sign and leave the total unchanged.
var multiplierForKindStatus = map[domain.TransactionKind]map[domain.TransactionStatus]int64{
	domain.KindGift:       {domain.StatusCompleted: 1},
	domain.KindCorrection: {domain.StatusCompleted: 0},
	domain.KindRefund:     {domain.StatusCompleted: -1},
	domain.KindVoid:       {domain.StatusCompleted: -1},
	domain.KindBounced:    {domain.StatusCompleted: -1},
	domain.KindDispute: {
		domain.StatusWon:       0,
		domain.StatusLost:      -1,
		domain.StatusRequested: 1,
		domain.StatusAccepted:  0,
	},
	domain.KindFine: {domain.StatusCompleted: -1},
}

// disputeStatusForHistory maps a processor dispute history status onto the
// ledger's Dispute transaction status.
var disputeStatusForHistory = map[string]domain.TransactionStatus{
	"accepted": domain.StatusLost,
	"disputed": domain.StatusRequested,
	"expired":  domain.StatusLost,
	"open":     domain.StatusAccepted,
	"lost":     domain.StatusLost,
	"won":      domain.StatusWon,
}

// webhookStatusForKind maps a subscription webhook kind onto the status of
// the Gift transaction it records.
var webhookStatusForKind = map[string]domain.TransactionStatus{
	clients.WebhookSubscriptionChargedSuccessfully:   domain.StatusCompleted,
	clients.WebhookSubscriptionChargedUnsuccessfully: domain.StatusDeclined,
	clients.WebhookSubscriptionWentPastDue:           domain.StatusFailed,
	clients.WebhookSubscriptionExpired:               domain.StatusFailed,
}

// MultiplierFor returns the sign folded into the running total for one
// (kind, status) pair.
func MultiplierFor(kind domain.TransactionKind, status domain.TransactionStatus) decimal.Decimal {
	if statuses, ok := multiplierForKindStatus[kind]; ok {
		if m, ok := statuses[status]; ok {
			return decimal.NewFromInt(m)
		}
	}
	return decimal.Zero
}

// DisputeStatusFor translates a processor dispute history status, reporting
// false for statuses the ledger does not track.
func DisputeStatusFor(historyStatus string) (domain.TransactionStatus, bool) {
	status, ok := disputeStatusForHistory[strings.ToLower(historyStatus)]
	return status, ok
}

// WebhookStatusFor translates a subscription webhook kind, reporting false
// for kinds the reconciler does not manage.
func WebhookStatusFor(webhookKind string) (domain.TransactionStatus, bool) {
	status, ok := webhookStatusForKind[webhookKind]
	return status, ok
}

// SaleKindStatusFor translates one processor sale status-history entry onto
// a ledger (kind, status) pair. Statuses that carry no ledger meaning, such
// as a non-refund submitted_for_settlement, report false.
func SaleKindStatusFor(saleStatus string, isRefund bool) (domain.TransactionKind, domain.TransactionStatus, bool) {
	switch saleStatus {
	case "voided":
		return domain.KindVoid, domain.StatusCompleted, true
	case "disbursed":
		return domain.KindDepositToBank, domain.StatusCompleted, true
	}
	if isRefund {
		switch saleStatus {
		case clients.SaleStatusSubmittedForSettlement, clients.SaleStatusSettled:
			return domain.KindRefund, domain.StatusCompleted, true
		}
		return "", "", false
	}
	switch saleStatus {
	case clients.SaleStatusAuthorized, clients.SaleStatusSettled:
		return domain.KindGift, domain.StatusCompleted, true
	}
	return "", "", false
}

// TransactionInput carries the caller-supplied fields of a new ledger
// entry. Amount is the entry's own unsigned amount; the builder folds it
// into the running total using the multiplier table.
type TransactionInput struct {
	GiftID          int64
	Date            time.Time
	AgentID         *int64
	Kind            domain.TransactionKind
	Status          domain.TransactionStatus
	ReferenceNumber string
	Amount          decimal.Decimal
	Fee             decimal.Decimal
	Notes           string
}

// BuildTransaction validates the input and produces the ledger entry with
// its running total computed from currentTotal.
func BuildTransaction(input TransactionInput, currentTotal decimal.Decimal) (domain.Transaction, error) {
	if !input.Kind.IsValid() {
		return domain.Transaction{}, fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrValidation, input.Kind)
	}
	if !input.Status.IsValid() {
		return domain.Transaction{}, fmt.Errorf("%w: unknown transaction status %q", apperrors.ErrValidation, input.Status)
	}
	if input.AgentID == nil {
		return domain.Transaction{}, fmt.Errorf("%w: transactions require an enacting agent", apperrors.ErrValidation)
	}
	if input.Kind == domain.KindNote && strings.TrimSpace(input.Notes) == "" {
		return domain.Transaction{}, fmt.Errorf("%w: note transactions require notes", apperrors.ErrValidation)
	}
	if input.Kind == domain.KindNote && input.Status != domain.StatusCompleted && input.Status != domain.StatusThankYouSent {
		return domain.Transaction{}, fmt.Errorf("%w: note transactions must be Completed", apperrors.ErrValidation)
	}
	if input.Amount.IsNegative() {
		return domain.Transaction{}, fmt.Errorf("%w: transaction amount cannot be negative", apperrors.ErrValidation)
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	gross := currentTotal.Add(MultiplierFor(input.Kind, input.Status).Mul(input.Amount))
	return domain.Transaction{
		GiftID:           input.GiftID,
		Date:             date.UTC(),
		EnactedByAgentID: input.AgentID,
		Kind:             input.Kind,
		Status:           input.Status,
		ReferenceNumber:  input.ReferenceNumber,
		GrossAmount:      gross,
		Fee:              input.Fee,
		Notes:            input.Notes,
	}, nil
}
