package mapping

import (
	"github.com/civicgift/donate-backend/internal/core/domain"
	"github.com/civicgift/donate-backend/internal/models"
)

// ToDomainAgent converts an agent table row to the domain type.
func ToDomainAgent(m models.Agent) domain.Agent {
	d := domain.Agent{
		ID:      m.ID,
		Name:    m.Name,
		UserID:  m.UserID,
		StaffID: m.StaffID,
		Type:    domain.AgentType(m.Type),
	}
	if m.Email != nil {
		d.Email = *m.Email
	}
	if m.PasswordHash != nil {
		d.PasswordHash = *m.PasswordHash
	}
	return d
}

// ToModelAgent converts a domain Agent to its table model.
func ToModelAgent(d domain.Agent) models.Agent {
	m := models.Agent{
		ID:      d.ID,
		Name:    d.Name,
		UserID:  d.UserID,
		StaffID: d.StaffID,
		Type:    string(d.Type),
	}
	if d.Email != "" {
		m.Email = &d.Email
	}
	if d.PasswordHash != "" {
		m.PasswordHash = &d.PasswordHash
	}
	return m
}
