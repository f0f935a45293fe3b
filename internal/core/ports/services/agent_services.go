package services

import (
	"context"

	"github.com/civicgift/donate-backend/internal/core/domain"
)

// AgentSvcFacade resolves the actors attributed on ledger writes.
type AgentSvcFacade interface {
	// ListAgents retrieves all agents.
	ListAgents(ctx context.Context) ([]domain.Agent, error)

	// ResolveStaffAgent finds the acting staff agent by the id carried in
	// the access token, falling back to the unknown staff agent.
	ResolveStaffAgent(ctx context.Context, agentID int64) (*domain.Agent, error)

	// ResolveAgentByName finds a well-known agent, falling back to the
	// unknown agent of the matching type.
	ResolveAgentByName(ctx context.Context, name string) (*domain.Agent, error)
}
