package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/civicgift/donate-backend/internal/apperrors"
	"github.com/civicgift/donate-backend/internal/core/domain"
	portsrepo "github.com/civicgift/donate-backend/internal/core/ports/repositories"
	"github.com/civicgift/donate-backend/internal/models"
	"github.com/civicgift/donate-backend/internal/utils/mapping"
)

type PgxAgentRepository struct {
	BaseRepository
}

// newPgxAgentRepository creates a new repository for agents.
func newPgxAgentRepository(pool *pgxpool.Pool) portsrepo.AgentRepositoryFacade {
	return &PgxAgentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AgentRepositoryFacade = (*PgxAgentRepository)(nil)

const agentColumns = `id, name, user_id, staff_id, type, email, password_hash`

func scanAgent(row pgx.Row) (*domain.Agent, error) {
	var m models.Agent
	err := row.Scan(&m.ID, &m.Name, &m.UserID, &m.StaffID, &m.Type, &m.Email, &m.PasswordHash)
	if err != nil {
		return nil, err
	}
	agent := mapping.ToDomainAgent(m)
	return &agent, nil
}

// FindAgentByID retrieves an agent by id.
func (r *PgxAgentRepository) FindAgentByID(ctx context.Context, agentID int64) (*domain.Agent, error) {
	agent, err := scanAgent(r.Pool.QueryRow(ctx, `SELECT `+agentColumns+` FROM agent WHERE id = $1`, agentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("agent %d: %w", agentID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find agent %d: %w", agentID, err)
	}
	return agent, nil
}

// FindAgentByName retrieves an agent by its exact name.
func (r *PgxAgentRepository) FindAgentByName(ctx context.Context, name string) (*domain.Agent, error) {
	agent, err := scanAgent(r.Pool.QueryRow(ctx, `SELECT `+agentColumns+` FROM agent WHERE name = $1`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("agent %q: %w", name, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find agent %q: %w", name, err)
	}
	return agent, nil
}

// FindAgentByUserID retrieves the agent bound to a directory user id,
// falling back to the unknown staff agent so ledger writes keep their
// attribution.
func (r *PgxAgentRepository) FindAgentByUserID(ctx context.Context, userID int64) (*domain.Agent, error) {
	agent, err := scanAgent(r.Pool.QueryRow(ctx, `SELECT `+agentColumns+` FROM agent WHERE user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.FindAgentByName(ctx, domain.AgentNameUnknownStaff)
		}
		return nil, fmt.Errorf("failed to find agent for user %d: %w", userID, err)
	}
	return agent, nil
}

// FindAgentByEmail retrieves an agent by login email.
func (r *PgxAgentRepository) FindAgentByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	agent, err := scanAgent(r.Pool.QueryRow(ctx, `SELECT `+agentColumns+` FROM agent WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("agent %s: %w", email, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find agent by email: %w", err)
	}
	return agent, nil
}

// ListAgents retrieves all agents.
func (r *PgxAgentRepository) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+agentColumns+` FROM agent ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	defer rows.Close()

	var agents []domain.Agent
	for rows.Next() {
		var m models.Agent
		if err := rows.Scan(&m.ID, &m.Name, &m.UserID, &m.StaffID, &m.Type, &m.Email, &m.PasswordHash); err != nil {
			return nil, fmt.Errorf("failed to scan agent row: %w", err)
		}
		agents = append(agents, mapping.ToDomainAgent(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate agent rows: %w", err)
	}
	return agents, nil
}

// SaveAgent persists a new agent and fills in its assigned id.
func (r *PgxAgentRepository) SaveAgent(ctx context.Context, agent *domain.Agent) error {
	m := mapping.ToModelAgent(*agent)
	query := `
		INSERT INTO agent (name, user_id, staff_id, type, email, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.Pool.QueryRow(ctx, query, m.Name, m.UserID, m.StaffID, m.Type, m.Email, m.PasswordHash).Scan(&agent.ID)
	if err != nil {
		return fmt.Errorf("failed to insert agent %q: %w", m.Name, err)
	}
	return nil
}
