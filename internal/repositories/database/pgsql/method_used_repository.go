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
)

type PgxMethodUsedRepository struct {
	BaseRepository
}

// newPgxMethodUsedRepository creates a new repository over the method_used
// seed table.
func newPgxMethodUsedRepository(pool *pgxpool.Pool) portsrepo.MethodUsedRepositoryFacade {
	return &PgxMethodUsedRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MethodUsedRepositoryFacade = (*PgxMethodUsedRepository)(nil)

// FindMethodUsedByID retrieves a payment method by id.
func (r *PgxMethodUsedRepository) FindMethodUsedByID(ctx context.Context, id int16) (*domain.MethodUsed, error) {
	var m models.MethodUsed
	err := r.Pool.QueryRow(ctx, `SELECT id, name, billing_address_required FROM method_used WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.BillingAddressRequired)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("method used %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find method used %d: %w", id, err)
	}
	return &domain.MethodUsed{ID: m.ID, Name: m.Name, BillingAddressRequired: m.BillingAddressRequired}, nil
}

// FindMethodUsedByName retrieves a payment method by its exact name.
func (r *PgxMethodUsedRepository) FindMethodUsedByName(ctx context.Context, name string) (*domain.MethodUsed, error) {
	var m models.MethodUsed
	err := r.Pool.QueryRow(ctx, `SELECT id, name, billing_address_required FROM method_used WHERE name = $1`, name).
		Scan(&m.ID, &m.Name, &m.BillingAddressRequired)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("method used %q: %w", name, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find method used %q: %w", name, err)
	}
	return &domain.MethodUsed{ID: m.ID, Name: m.Name, BillingAddressRequired: m.BillingAddressRequired}, nil
}

// ListMethodsUsed retrieves all payment methods.
func (r *PgxMethodUsedRepository) ListMethodsUsed(ctx context.Context) ([]domain.MethodUsed, error) {
	rows, err := r.Pool.Query(ctx, `SELECT id, name, billing_address_required FROM method_used ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list methods used: %w", err)
	}
	defer rows.Close()

	var methods []domain.MethodUsed
	for rows.Next() {
		var m models.MethodUsed
		if err := rows.Scan(&m.ID, &m.Name, &m.BillingAddressRequired); err != nil {
			return nil, fmt.Errorf("failed to scan method used row: %w", err)
		}
		methods = append(methods, domain.MethodUsed{ID: m.ID, Name: m.Name, BillingAddressRequired: m.BillingAddressRequired})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate method used rows: %w", err)
	}
	return methods, nil
}
