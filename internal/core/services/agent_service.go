package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/civicgift/donate-backend/internal/apperrors"
	"github.com/civicgift/donate-backend/internal/core/domain"
	portsrepo "github.com/civicgift/donate-backend/internal/core/ports/repositories"
	portssvc "github.com/civicgift/donate-backend/internal/core/ports/services"
)

// agentService resolves the actors attributed on ledger writes. Resolution
// never fails outright: a missing specific agent degrades to the matching
// unknown agent so every transaction keeps its enacted-by id.
type agentService struct {
	agentRepo portsrepo.AgentRepositoryFacade
}

// NewAgentService creates a new AgentService.
func NewAgentService(agentRepo portsrepo.AgentRepositoryFacade) portssvc.AgentSvcFacade {
	return &agentService{agentRepo: agentRepo}
}

var _ portssvc.AgentSvcFacade = (*agentService)(nil)

// ListAgents retrieves all agents.
func (s *agentService) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	return s.agentRepo.ListAgents(ctx)
}

// ResolveStaffAgent finds the acting staff agent by the id carried in the
// access token.
func (s *agentService) ResolveStaffAgent(ctx context.Context, agentID int64) (*domain.Agent, error) {
	agent, err := s.agentRepo.FindAgentByID(ctx, agentID)
	if err == nil {
		return agent, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	agent, err = s.agentRepo.FindAgentByName(ctx, domain.AgentNameUnknownStaff)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve staff agent %d: %w", agentID, err)
	}
	return agent, nil
}

// ResolveAgentByName finds a well-known agent, falling back to the unknown
// organization agent.
func (s *agentService) ResolveAgentByName(ctx context.Context, name string) (*domain.Agent, error) {
	agent, err := s.agentRepo.FindAgentByName(ctx, name)
	if err == nil {
		return agent, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	agent, err = s.agentRepo.FindAgentByName(ctx, domain.AgentNameUnknownOrg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve agent %q: %w", name, err)
	}
	return agent, nil
}
