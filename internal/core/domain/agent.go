package domain

// AgentType distinguishes who (or what) enacts changes against the ledger.
type AgentType string

const (
	AgentStaff        AgentType = "Staff Member"
	AgentOrganization AgentType = "Organization"
	AgentAutomated    AgentType = "Automated"
)

// Well-known agent names. Lookups fall back to the matching Unknown agent
// when a specific one cannot be found, so ledger writes never lose their
// enacted-by attribution.
const (
	AgentNameDonateAPI      = "Donate API"
	AgentNameProcessor      = "Braintree"
	AgentNameBank           = "Fidelity Bank"
	AgentNameUnknownStaff   = "Unknown Staff Member"
	AgentNameUnknownOrg     = "Unknown Organization"
)

// Agent identifies a staff member, organization, or automated process that
// creates or mutates financial records.
type Agent struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	UserID       *int64    `json:"userID"`  // directory user id for staff members
	StaffID      *int64    `json:"staffID"`
	Type         AgentType `json:"type"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
}
