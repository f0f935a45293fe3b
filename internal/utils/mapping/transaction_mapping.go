package mapping

import (
	"github.com/civicgift/donate-backend/internal/core/domain"
	"github.com/civicgift/donate-backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to its table model.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		ID:               d.ID,
		GiftID:           d.GiftID,
		DateInUTC:        d.Date.UTC(),
		ReceiptSentInUTC: d.ReceiptSentAt,
		EnactedByAgentID: d.EnactedByAgentID,
		Kind:             string(d.Kind),
		Status:           string(d.Status),
		ReferenceNumber:  d.ReferenceNumber,
		GrossAmount:      d.GrossAmount,
		Fee:              d.Fee,
	}
	if d.Notes != "" {
		m.Notes = &d.Notes
	}
	return m
}

// ToDomainTransaction converts a transaction table row to the domain type.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		ID:               m.ID,
		GiftID:           m.GiftID,
		Date:             m.DateInUTC,
		ReceiptSentAt:    m.ReceiptSentInUTC,
		EnactedByAgentID: m.EnactedByAgentID,
		Kind:             domain.TransactionKind(m.Kind),
		Status:           domain.TransactionStatus(m.Status),
		ReferenceNumber:  m.ReferenceNumber,
		GrossAmount:      m.GrossAmount,
		Fee:              m.Fee,
	}
	if m.Notes != nil {
		d.Notes = *m.Notes
	}
	return d
}
