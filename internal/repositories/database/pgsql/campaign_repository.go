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

type PgxCampaignRepository struct {
	BaseRepository
}

// newPgxCampaignRepository creates a new repository for campaigns and their
// suggested amounts.
func newPgxCampaignRepository(pool *pgxpool.Pool) portsrepo.CampaignRepositoryFacade {
	return &PgxCampaignRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CampaignRepositoryFacade = (*PgxCampaignRepository)(nil)

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var m models.Campaign
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.IsActive, &m.IsDefault)
	if err != nil {
		return nil, err
	}
	campaign := mapping.ToDomainCampaign(m)
	return &campaign, nil
}

// FindCampaignByID retrieves a campaign by id.
func (r *PgxCampaignRepository) FindCampaignByID(ctx context.Context, campaignID int64) (*domain.Campaign, error) {
	campaign, err := scanCampaign(r.Pool.QueryRow(ctx,
		`SELECT id, name, description, is_active, is_default FROM campaign WHERE id = $1`, campaignID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("campaign %d: %w", campaignID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find campaign %d: %w", campaignID, err)
	}
	return campaign, nil
}

// FindDefaultCampaign retrieves the campaign marked as default.
func (r *PgxCampaignRepository) FindDefaultCampaign(ctx context.Context) (*domain.Campaign, error) {
	campaign, err := scanCampaign(r.Pool.QueryRow(ctx,
		`SELECT id, name, description, is_active, is_default FROM campaign WHERE is_default ORDER BY id ASC LIMIT 1`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("default campaign: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find default campaign: %w", err)
	}
	return campaign, nil
}

// ListCampaigns retrieves campaigns, optionally only active ones.
func (r *PgxCampaignRepository) ListCampaigns(ctx context.Context, activeOnly bool) ([]domain.Campaign, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT id, name, description, is_active, is_default FROM campaign WHERE ($1 = false OR is_active) ORDER BY id ASC`,
		activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []domain.Campaign
	for rows.Next() {
		var m models.Campaign
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.IsActive, &m.IsDefault); err != nil {
			return nil, fmt.Errorf("failed to scan campaign row: %w", err)
		}
		campaigns = append(campaigns, mapping.ToDomainCampaign(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate campaign rows: %w", err)
	}
	return campaigns, nil
}

// FindAmountsByCampaignID retrieves the suggested amounts of a campaign
// ordered by weight.
func (r *PgxCampaignRepository) FindAmountsByCampaignID(ctx context.Context, campaignID int64) ([]domain.CampaignAmount, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT id, campaign_id, amount, weight FROM campaign_amounts WHERE campaign_id = $1 ORDER BY weight ASC, id ASC`,
		campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list amounts for campaign %d: %w", campaignID, err)
	}
	defer rows.Close()

	var amounts []domain.CampaignAmount
	for rows.Next() {
		var m models.CampaignAmount
		if err := rows.Scan(&m.ID, &m.CampaignID, &m.Amount, &m.Weight); err != nil {
			return nil, fmt.Errorf("failed to scan campaign amount row: %w", err)
		}
		amounts = append(amounts, mapping.ToDomainCampaignAmount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate campaign amount rows: %w", err)
	}
	return amounts, nil
}

// SaveCampaign persists a new campaign. A new default campaign demotes the
// previous one inside the same transaction.
func (r *PgxCampaignRepository) SaveCampaign(ctx context.Context, campaign *domain.Campaign) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if campaign.IsDefault {
		if _, err := tx.Exec(ctx, `UPDATE campaign SET is_default = false WHERE is_default`); err != nil {
			return fmt.Errorf("failed to demote default campaign: %w", err)
		}
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO campaign (name, description, is_active, is_default) VALUES ($1, $2, $3, $4) RETURNING id`,
		campaign.Name, campaign.Description, campaign.IsActive, campaign.IsDefault,
	).Scan(&campaign.ID)
	if err != nil {
		return fmt.Errorf("failed to insert campaign %q: %w", campaign.Name, err)
	}
	return r.Commit(ctx, tx)
}

// UpdateCampaign updates name, description and flags.
func (r *PgxCampaignRepository) UpdateCampaign(ctx context.Context, campaign domain.Campaign) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE campaign SET name = $1, description = $2, is_active = $3 WHERE id = $4`,
		campaign.Name, campaign.Description, campaign.IsActive, campaign.ID)
	if err != nil {
		return fmt.Errorf("failed to update campaign %d: %w", campaign.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("campaign %d: %w", campaign.ID, apperrors.ErrNotFound)
	}
	return nil
}

// ReplaceAmounts swaps the full suggested-amount set of a campaign.
func (r *PgxCampaignRepository) ReplaceAmounts(ctx context.Context, campaignID int64, amounts []domain.CampaignAmount) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM campaign_amounts WHERE campaign_id = $1`, campaignID); err != nil {
		return fmt.Errorf("failed to clear amounts for campaign %d: %w", campaignID, err)
	}
	for _, a := range amounts {
		_, err := tx.Exec(ctx,
			`INSERT INTO campaign_amounts (campaign_id, amount, weight) VALUES ($1, $2, $3)`,
			campaignID, a.Amount, a.Weight)
		if err != nil {
			return fmt.Errorf("failed to insert amount for campaign %d: %w", campaignID, err)
		}
	}
	return r.Commit(ctx, tx)
}
