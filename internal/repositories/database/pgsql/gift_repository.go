package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/civicgift/donate-backend/internal/apperrors"
	"github.com/civicgift/donate-backend/internal/core/domain"
	portsrepo "github.com/civicgift/donate-backend/internal/core/ports/repositories"
	"github.com/civicgift/donate-backend/internal/models"
	"github.com/civicgift/donate-backend/internal/utils/mapping"
	"github.com/civicgift/donate-backend/internal/utils/pagination"
)

type PgxGiftRepository struct {
	BaseRepository
}

// newPgxGiftRepository creates a new repository for gift head records.
func newPgxGiftRepository(pool *pgxpool.Pool) portsrepo.GiftRepositoryFacade {
	return &PgxGiftRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GiftRepositoryFacade = (*PgxGiftRepository)(nil)

const giftColumns = `id, searchable_id, user_id, campaign_id, customer_id, method_used_id, sourced_from_agent_id, given_to, recurring_subscription_id`

func scanGift(row pgx.Row) (*domain.Gift, error) {
	var m models.Gift
	err := row.Scan(
		&m.ID,
		&m.SearchableID,
		&m.UserID,
		&m.CampaignID,
		&m.CustomerID,
		&m.MethodUsedID,
		&m.SourcedFromAgentID,
		&m.GivenTo,
		&m.RecurringSubscriptionID,
	)
	if err != nil {
		return nil, err
	}
	gift := mapping.ToDomainGift(m)
	return &gift, nil
}

// FindGiftByID retrieves a gift by its internal id.
func (r *PgxGiftRepository) FindGiftByID(ctx context.Context, giftID int64) (*domain.Gift, error) {
	query := `SELECT ` + giftColumns + ` FROM gift WHERE id = $1`
	gift, err := scanGift(r.Pool.QueryRow(ctx, query, giftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("gift %d: %w", giftID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find gift %d: %w", giftID, err)
	}
	return gift, nil
}

// FindGiftBySearchableID retrieves a gift by the UUID exposed to callers.
func (r *PgxGiftRepository) FindGiftBySearchableID(ctx context.Context, searchableID uuid.UUID) (*domain.Gift, error) {
	query := `SELECT ` + giftColumns + ` FROM gift WHERE searchable_id = $1`
	gift, err := scanGift(r.Pool.QueryRow(ctx, query, searchableID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("gift %s: %w", searchableID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find gift %s: %w", searchableID, err)
	}
	return gift, nil
}

// FindGiftsByCustomerID retrieves gifts stored against a vault customer,
// restricted to the given payment method names.
func (r *PgxGiftRepository) FindGiftsByCustomerID(ctx context.Context, customerID string, methodNames []string) ([]domain.Gift, error) {
	query := `
		SELECT ` + prefixedGiftColumns("g") + `
		FROM gift g
		JOIN method_used mu ON mu.id = g.method_used_id
		WHERE g.customer_id = $1 AND mu.name = ANY($2)
		ORDER BY g.id DESC`
	rows, err := r.Pool.Query(ctx, query, customerID, methodNames)
	if err != nil {
		return nil, fmt.Errorf("failed to query gifts for customer %s: %w", customerID, err)
	}
	defer rows.Close()
	return collectGifts(rows)
}

// FindGiftsBySubscriptionID retrieves gifts sharing a recurring
// subscription, newest first.
func (r *PgxGiftRepository) FindGiftsBySubscriptionID(ctx context.Context, subscriptionID string) ([]domain.Gift, error) {
	query := `SELECT ` + giftColumns + ` FROM gift WHERE recurring_subscription_id = $1 ORDER BY id DESC`
	rows, err := r.Pool.Query(ctx, query, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query gifts for subscription %s: %w", subscriptionID, err)
	}
	defer rows.Close()
	return collectGifts(rows)
}

// FindGiftByReferenceNumber retrieves the gift owning a transaction with the
// given processor reference, or nil when none does.
func (r *PgxGiftRepository) FindGiftByReferenceNumber(ctx context.Context, referenceNumber string) (*domain.Gift, error) {
	query := `
		SELECT ` + prefixedGiftColumns("g") + `
		FROM gift g
		JOIN transaction t ON t.gift_id = g.id
		WHERE t.reference_number = $1
		ORDER BY t.id ASC
		LIMIT 1`
	gift, err := scanGift(r.Pool.QueryRow(ctx, query, referenceNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find gift by reference %s: %w", referenceNumber, err)
	}
	return gift, nil
}

// ListGifts retrieves a page of gifts with the derived fields from each
// gift's most recent transaction.
func (r *PgxGiftRepository) ListGifts(ctx context.Context, limit int, nextToken *string) ([]domain.GiftWithLatest, *string, error) {
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

	query := `
		SELECT ` + prefixedGiftColumns("g") + `,
			t.status, t.gross_amount, t.date_in_utc
		FROM gift g
		LEFT JOIN LATERAL (
			SELECT status, gross_amount, date_in_utc
			FROM transaction
			WHERE gift_id = g.id
			ORDER BY date_in_utc DESC, id DESC
			LIMIT 1
		) t ON true
		WHERE ($1 = 0 OR g.id < $1)
		ORDER BY g.id DESC
		LIMIT $2`
	rows, err := r.Pool.Query(ctx, query, afterID, limit+1)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list gifts: %w", err)
	}
	defer rows.Close()

	var gifts []domain.GiftWithLatest
	for rows.Next() {
		var m models.Gift
		var status *string
		var gross *decimal.Decimal
		var date *time.Time
		err := rows.Scan(
			&m.ID, &m.SearchableID, &m.UserID, &m.CampaignID, &m.CustomerID,
			&m.MethodUsedID, &m.SourcedFromAgentID, &m.GivenTo, &m.RecurringSubscriptionID,
			&status, &gross, &date,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan gift row: %w", err)
		}
		g := domain.GiftWithLatest{Gift: mapping.ToDomainGift(m), LatestDate: date}
		if status != nil {
			g.LatestStatus = domain.TransactionStatus(*status)
		}
		if gross != nil {
			g.LatestAmount = *gross
		}
		gifts = append(gifts, g)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate gift rows: %w", err)
	}

	var token *string
	if len(gifts) > limit {
		gifts = gifts[:limit]
		t := pagination.EncodeCursor(strconv.FormatInt(gifts[limit-1].ID, 10))
		token = &t
	}
	return gifts, token, nil
}

// SaveGift persists a new gift and fills in its assigned id.
func (r *PgxGiftRepository) SaveGift(ctx context.Context, tx pgx.Tx, gift *domain.Gift) error {
	m := mapping.ToModelGift(*gift)
	query := `
		INSERT INTO gift (
			searchable_id, user_id, campaign_id, customer_id, method_used_id,
			sourced_from_agent_id, given_to, recurring_subscription_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := tx.QueryRow(ctx, query,
		m.SearchableID,
		m.UserID,
		m.CampaignID,
		m.CustomerID,
		m.MethodUsedID,
		m.SourcedFromAgentID,
		m.GivenTo,
		m.RecurringSubscriptionID,
	).Scan(&gift.ID)
	if err != nil {
		return fmt.Errorf("failed to insert gift %s: %w", m.SearchableID, err)
	}
	return nil
}

// UpdateGiftDonor rewrites the stored donor reference.
func (r *PgxGiftRepository) UpdateGiftDonor(ctx context.Context, tx pgx.Tx, giftID int64, donor domain.DonorRef) error {
	tag, err := tx.Exec(ctx, `UPDATE gift SET user_id = $1 WHERE id = $2`, donor.Encode(), giftID)
	if err != nil {
		return fmt.Errorf("failed to update donor on gift %d: %w", giftID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("gift %d: %w", giftID, apperrors.ErrNotFound)
	}
	return nil
}

// UpdateGiftGivenTo reallocates the gift to another beneficiary account.
func (r *PgxGiftRepository) UpdateGiftGivenTo(ctx context.Context, tx pgx.Tx, giftID int64, givenTo domain.BeneficiaryAccount) error {
	tag, err := tx.Exec(ctx, `UPDATE gift SET given_to = $1 WHERE id = $2`, string(givenTo), giftID)
	if err != nil {
		return fmt.Errorf("failed to update given_to on gift %d: %w", giftID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("gift %d: %w", giftID, apperrors.ErrNotFound)
	}
	return nil
}

// UpdateGiftSubscriptionID sets the recurring subscription reference.
func (r *PgxGiftRepository) UpdateGiftSubscriptionID(ctx context.Context, tx pgx.Tx, giftID int64, subscriptionID *string) error {
	tag, err := tx.Exec(ctx, `UPDATE gift SET recurring_subscription_id = $1 WHERE id = $2`, subscriptionID, giftID)
	if err != nil {
		return fmt.Errorf("failed to update subscription on gift %d: %w", giftID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("gift %d: %w", giftID, apperrors.ErrNotFound)
	}
	return nil
}

func prefixedGiftColumns(alias string) string {
	return alias + `.id, ` + alias + `.searchable_id, ` + alias + `.user_id, ` + alias + `.campaign_id, ` +
		alias + `.customer_id, ` + alias + `.method_used_id, ` + alias + `.sourced_from_agent_id, ` +
		alias + `.given_to, ` + alias + `.recurring_subscription_id`
}

func collectGifts(rows pgx.Rows) ([]domain.Gift, error) {
	var gifts []domain.Gift
	for rows.Next() {
		var m models.Gift
		err := rows.Scan(
			&m.ID, &m.SearchableID, &m.UserID, &m.CampaignID, &m.CustomerID,
			&m.MethodUsedID, &m.SourcedFromAgentID, &m.GivenTo, &m.RecurringSubscriptionID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gift row: %w", err)
		}
		gifts = append(gifts, mapping.ToDomainGift(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate gift rows: %w", err)
	}
	return gifts, nil
}
