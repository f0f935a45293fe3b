package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/civicgift/donate-backend/internal/apperrors"
	"github.com/civicgift/donate-backend/internal/core/domain"
	portsrepo "github.com/civicgift/donate-backend/internal/core/ports/repositories"
	"github.com/civicgift/donate-backend/internal/models"
	"github.com/civicgift/donate-backend/internal/utils/mapping"
	"github.com/civicgift/donate-backend/internal/utils/pagination"
)

type PgxDonorRepository struct {
	BaseRepository
}

// newPgxDonorRepository creates a new repository over the queued_donor and
// caged_donor tables.
func newPgxDonorRepository(pool *pgxpool.Pool) portsrepo.DonorRepositoryFacade {
	return &PgxDonorRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DonorRepositoryFacade = (*PgxDonorRepository)(nil)

const pendingDonorColumns = `id, gift_id, gift_searchable_id, campaign_id, customer_id, email_address, first_name, last_name, address, city, state, zipcode, phone_number, times_viewed`

func scanPendingDonor(row pgx.Row) (*domain.PendingDonor, error) {
	var m models.PendingDonor
	err := row.Scan(
		&m.ID,
		&m.GiftID,
		&m.GiftSearchableID,
		&m.CampaignID,
		&m.CustomerID,
		&m.EmailAddress,
		&m.FirstName,
		&m.LastName,
		&m.Address,
		&m.City,
		&m.State,
		&m.Zipcode,
		&m.PhoneNumber,
		&m.TimesViewed,
	)
	if err != nil {
		return nil, err
	}
	donor := mapping.ToDomainPendingDonor(m)
	return &donor, nil
}

// FindQueuedDonorByID retrieves a queued donor row.
func (r *PgxDonorRepository) FindQueuedDonorByID(ctx context.Context, id int64) (*domain.PendingDonor, error) {
	query := `SELECT ` + pendingDonorColumns + ` FROM queued_donor WHERE id = $1`
	donor, err := scanPendingDonor(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("queued donor %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find queued donor %d: %w", id, err)
	}
	return donor, nil
}

// FindQueuedDonorByGiftID retrieves the queued donor attached to a gift, or
// nil when none is queued.
func (r *PgxDonorRepository) FindQueuedDonorByGiftID(ctx context.Context, giftID int64) (*domain.PendingDonor, error) {
	query := `SELECT ` + pendingDonorColumns + ` FROM queued_donor WHERE gift_id = $1`
	donor, err := scanPendingDonor(r.Pool.QueryRow(ctx, query, giftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find queued donor for gift %d: %w", giftID, err)
	}
	return donor, nil
}

// SaveQueuedDonor persists the donor details captured at donation time.
func (r *PgxDonorRepository) SaveQueuedDonor(ctx context.Context, tx pgx.Tx, donor *domain.PendingDonor) error {
	return r.savePendingDonor(ctx, tx, "queued_donor", donor)
}

// DeleteQueuedDonor removes a queued donor row.
func (r *PgxDonorRepository) DeleteQueuedDonor(ctx context.Context, tx pgx.Tx, id int64) error {
	tag, err := tx.Exec(ctx, `DELETE FROM queued_donor WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete queued donor %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("queued donor %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// FindCagedDonorByID retrieves a caged donor row.
func (r *PgxDonorRepository) FindCagedDonorByID(ctx context.Context, id int64) (*domain.PendingDonor, error) {
	query := `SELECT ` + pendingDonorColumns + ` FROM caged_donor WHERE id = $1`
	donor, err := scanPendingDonor(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("caged donor %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find caged donor %d: %w", id, err)
	}
	return donor, nil
}

// FindCagedDonorByGiftID retrieves the caged donor attached to a gift, or
// nil when none is caged.
func (r *PgxDonorRepository) FindCagedDonorByGiftID(ctx context.Context, giftID int64) (*domain.PendingDonor, error) {
	query := `SELECT ` + pendingDonorColumns + ` FROM caged_donor WHERE gift_id = $1`
	donor, err := scanPendingDonor(r.Pool.QueryRow(ctx, query, giftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find caged donor for gift %d: %w", giftID, err)
	}
	return donor, nil
}

// ListCagedDonors retrieves a page of caged donors, oldest first so the
// review queue drains in order.
func (r *PgxDonorRepository) ListCagedDonors(ctx context.Context, limit int, nextToken *string) ([]domain.PendingDonor, *string, error) {
	afterID := int64(0)
	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeCursor(*nextToken)
		if err != nil || len(fields) != 1 {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		afterID, err = strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
	}

	query := `SELECT ` + pendingDonorColumns + ` FROM caged_donor WHERE id > $1 ORDER BY id ASC LIMIT $2`
	rows, err := r.Pool.Query(ctx, query, afterID, limit+1)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list caged donors: %w", err)
	}
	defer rows.Close()

	var donors []domain.PendingDonor
	for rows.Next() {
		var m models.PendingDonor
		err := rows.Scan(
			&m.ID, &m.GiftID, &m.GiftSearchableID, &m.CampaignID, &m.CustomerID,
			&m.EmailAddress, &m.FirstName, &m.LastName, &m.Address, &m.City,
			&m.State, &m.Zipcode, &m.PhoneNumber, &m.TimesViewed,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan caged donor row: %w", err)
		}
		donors = append(donors, mapping.ToDomainPendingDonor(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate caged donor rows: %w", err)
	}

	var token *string
	if len(donors) > limit {
		donors = donors[:limit]
		t := pagination.EncodeCursor(strconv.FormatInt(donors[limit-1].ID, 10))
		token = &t
	}
	return donors, token, nil
}

// SaveCagedDonor persists a donor that could not be matched.
func (r *PgxDonorRepository) SaveCagedDonor(ctx context.Context, tx pgx.Tx, donor *domain.PendingDonor) error {
	return r.savePendingDonor(ctx, tx, "caged_donor", donor)
}

// IncrementTimesViewed bumps the review counter on a caged donor.
func (r *PgxDonorRepository) IncrementTimesViewed(ctx context.Context, id int64) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE caged_donor SET times_viewed = times_viewed + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views on caged donor %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("caged donor %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteCagedDonor removes a caged donor row once resolved.
func (r *PgxDonorRepository) DeleteCagedDonor(ctx context.Context, tx pgx.Tx, id int64) error {
	tag, err := tx.Exec(ctx, `DELETE FROM caged_donor WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete caged donor %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("caged donor %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxDonorRepository) savePendingDonor(ctx context.Context, tx pgx.Tx, table string, donor *domain.PendingDonor) error {
	m := mapping.ToModelPendingDonor(*donor)
	query := `
		INSERT INTO ` + table + ` (
			gift_id, gift_searchable_id, campaign_id, customer_id, email_address,
			first_name, last_name, address, city, state, zipcode, phone_number, times_viewed
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := tx.QueryRow(ctx, query,
		m.GiftID,
		m.GiftSearchableID,
		m.CampaignID,
		m.CustomerID,
		m.EmailAddress,
		m.FirstName,
		m.LastName,
		m.Address,
		m.City,
		m.State,
		m.Zipcode,
		m.PhoneNumber,
		m.TimesViewed,
	).Scan(&donor.ID)
	if err != nil {
		return fmt.Errorf("failed to insert into %s for gift %d: %w", table, m.GiftID, err)
	}
	return nil
}
