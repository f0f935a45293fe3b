package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/civicgift/donate-backend/internal/apperrors"
	"github.com/civicgift/donate-backend/internal/core/domain"
	portsrepo "github.com/civicgift/donate-backend/internal/core/ports/repositories"
)

type PgxThankYouRepository struct {
	BaseRepository
}

// newPgxThankYouRepository creates a new repository over the
// gift_thank_you_letter queue table.
func newPgxThankYouRepository(pool *pgxpool.Pool) portsrepo.ThankYouRepositoryFacade {
	return &PgxThankYouRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ThankYouRepositoryFacade = (*PgxThankYouRepository)(nil)

// ListThankYouMarkers retrieves the queued markers oldest first.
func (r *PgxThankYouRepository) ListThankYouMarkers(ctx context.Context) ([]domain.ThankYouMarker, error) {
	rows, err := r.Pool.Query(ctx, `SELECT id, gift_id FROM gift_thank_you_letter ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list thank you markers: %w", err)
	}
	defer rows.Close()

	var markers []domain.ThankYouMarker
	for rows.Next() {
		var m domain.ThankYouMarker
		if err := rows.Scan(&m.ID, &m.GiftID); err != nil {
			return nil, fmt.Errorf("failed to scan thank you marker row: %w", err)
		}
		markers = append(markers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate thank you marker rows: %w", err)
	}
	return markers, nil
}

// FindThankYouMarkerByID retrieves one marker.
func (r *PgxThankYouRepository) FindThankYouMarkerByID(ctx context.Context, id int64) (*domain.ThankYouMarker, error) {
	var m domain.ThankYouMarker
	err := r.Pool.QueryRow(ctx, `SELECT id, gift_id FROM gift_thank_you_letter WHERE id = $1`, id).Scan(&m.ID, &m.GiftID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("thank you marker %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find thank you marker %d: %w", id, err)
	}
	return &m, nil
}

// ExistsThankYouMarker reports whether a gift is already queued.
func (r *PgxThankYouRepository) ExistsThankYouMarker(ctx context.Context, giftID int64) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM gift_thank_you_letter WHERE gift_id = $1)`, giftID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check thank you marker for gift %d: %w", giftID, err)
	}
	return exists, nil
}

// SaveThankYouMarker queues a gift for a letter. Queuing the same gift
// twice is reported as ErrDuplicate.
func (r *PgxThankYouRepository) SaveThankYouMarker(ctx context.Context, tx pgx.Tx, giftID int64) error {
	_, err := tx.Exec(ctx, `INSERT INTO gift_thank_you_letter (gift_id) VALUES ($1)`, giftID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: gift %d already queued for thank you letter", apperrors.ErrDuplicate, giftID)
		}
		return fmt.Errorf("failed to queue thank you letter for gift %d: %w", giftID, err)
	}
	return nil
}

// DeleteThankYouMarker removes a marker once the letter went out.
func (r *PgxThankYouRepository) DeleteThankYouMarker(ctx context.Context, tx pgx.Tx, id int64) error {
	tag, err := tx.Exec(ctx, `DELETE FROM gift_thank_you_letter WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete thank you marker %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("thank you marker %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
