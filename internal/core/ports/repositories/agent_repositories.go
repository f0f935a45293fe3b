package repositories

import (
	"context"

	"github.com/civicgift/donate-backend/internal/core/domain"
)

// AgentReader defines read operations for agent data
type AgentReader interface {
	// FindAgentByID retrieves an agent by id.
	FindAgentByID(ctx context.Context, agentID int64) (*domain.Agent, error)

	// FindAgentByName retrieves an agent by its exact name.
	FindAgentByName(ctx context.Context, name string) (*domain.Agent, error)

	// FindAgentByUserID retrieves the agent bound to a directory user id.
	// Falls back to the "Unknown Staff Member" agent when no row matches.
	FindAgentByUserID(ctx context.Context, userID int64) (*domain.Agent, error)

	// FindAgentByEmail retrieves an agent by login email.
	FindAgentByEmail(ctx context.Context, email string) (*domain.Agent, error)

	// ListAgents retrieves all agents.
	ListAgents(ctx context.Context) ([]domain.Agent, error)
}

// AgentWriter defines write operations for agent data
type AgentWriter interface {
	// SaveAgent persists a new agent.
	SaveAgent(ctx context.Context, agent *domain.Agent) error
}

// AgentRepositoryFacade combines all agent-related repository interfaces
type AgentRepositoryFacade interface {
	AgentReader
	AgentWriter
}
