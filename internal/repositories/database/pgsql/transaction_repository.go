package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/civicgift/donate-backend/internal/apperrors"
	"github.com/civicgift/donate-backend/internal/core/domain"
	portsrepo "github.com/civicgift/donate-backend/internal/core/ports/repositories"
	"github.com/civicgift/donate-backend/internal/models"
	"github.com/civicgift/donate-backend/internal/utils/mapping"
	"github.com/civicgift/donate-backend/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `id, gift_id, date_in_utc, receipt_sent_in_utc, enacted_by_agent_id, kind, status, reference_number, gross_amount, fee, notes`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.ID,
		&m.GiftID,
		&m.DateInUTC,
		&m.ReceiptSentInUTC,
		&m.EnactedByAgentID,
		&m.Kind,
		&m.Status,
		&m.ReferenceNumber,
		&m.GrossAmount,
		&m.Fee,
		&m.Notes,
	)
	if err != nil {
		return nil, err
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// FindTransactionsByGiftID retrieves the full history of a gift, ordered by
// date then id ascending. The last row carries the gift's current running
// total.
func (r *PgxTransactionRepository) FindTransactionsByGiftID(ctx context.Context, giftID int64) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transaction WHERE gift_id = $1 ORDER BY date_in_utc ASC, id ASC`
	rows, err := r.Pool.Query(ctx, query, giftID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for gift %d: %w", giftID, err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// FindLatestTransactionByGiftID retrieves the most recent transaction of a
// gift, or nil when the gift has no history yet.
func (r *PgxTransactionRepository) FindLatestTransactionByGiftID(ctx context.Context, giftID int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transaction WHERE gift_id = $1 ORDER BY date_in_utc DESC, id DESC LIMIT 1`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, giftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest transaction for gift %d: %w", giftID, err)
	}
	return txn, nil
}

// FindTransactionByReference retrieves the transaction matching the
// composite key, or nil when no such row exists.
func (r *PgxTransactionRepository) FindTransactionByReference(ctx context.Context, giftID int64, kind domain.TransactionKind, status domain.TransactionStatus, referenceNumber string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transaction WHERE gift_id = $1 AND kind = $2 AND status = $3 AND reference_number = $4`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, giftID, string(kind), string(status), referenceNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find transaction by reference %s: %w", referenceNumber, err)
	}
	return txn, nil
}

// ExistsByReference reports whether any transaction carries the given
// processor reference.
func (r *PgxTransactionRepository) ExistsByReference(ctx context.Context, referenceNumber string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM transaction WHERE reference_number = $1)`, referenceNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check reference %s: %w", referenceNumber, err)
	}
	return exists, nil
}

// ListTransactions retrieves a page of transactions across all gifts,
// newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	afterDate := time.Time{}
	afterID := int64(0)
	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeCursor(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		afterDate, err = time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		afterID, err = strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transaction
		WHERE ($1::timestamptz IS NULL OR (date_in_utc, id) < ($1, $2))
		ORDER BY date_in_utc DESC, id DESC
		LIMIT $3`
	var afterDateArg *time.Time
	if !afterDate.IsZero() {
		afterDateArg = &afterDate
	}
	rows, err := r.Pool.Query(ctx, query, afterDateArg, afterID, limit+1)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns, err := collectTransactions(rows)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[limit-1]
		t := pagination.EncodeCursor(last.Date.UTC().Format(time.RFC3339Nano), strconv.FormatInt(last.ID, 10))
		token = &t
	}
	return txns, token, nil
}

// SaveTransaction appends one transaction row inside the caller's database
// transaction. The (gift_id, kind, status, reference_number) unique
// constraint turns replayed webhook and batch writes into ErrDuplicate.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	m := mapping.ToModelTransaction(*txn)
	query := `
		INSERT INTO transaction (
			gift_id, date_in_utc, receipt_sent_in_utc, enacted_by_agent_id,
			kind, status, reference_number, gross_amount, fee, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := tx.QueryRow(ctx, query,
		m.GiftID,
		m.DateInUTC,
		m.ReceiptSentInUTC,
		m.EnactedByAgentID,
		m.Kind,
		m.Status,
		m.ReferenceNumber,
		m.GrossAmount,
		m.Fee,
		m.Notes,
	).Scan(&txn.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction %s/%s/%s already recorded for gift %d",
				apperrors.ErrDuplicate, m.Kind, m.Status, m.ReferenceNumber, m.GiftID)
		}
		return fmt.Errorf("failed to insert transaction for gift %d: %w", m.GiftID, err)
	}
	return nil
}

// UpdateReceiptSentAt stamps the time a receipt or letter went out.
func (r *PgxTransactionRepository) UpdateReceiptSentAt(ctx context.Context, tx pgx.Tx, transactionID int64, sentAt time.Time) error {
	tag, err := tx.Exec(ctx, `UPDATE transaction SET receipt_sent_in_utc = $1 WHERE id = $2`, sentAt.UTC(), transactionID)
	if err != nil {
		return fmt.Errorf("failed to update receipt time on transaction %d: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %d: %w", transactionID, apperrors.ErrNotFound)
	}
	return nil
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	for rows.Next() {
		var m models.Transaction
		err := rows.Scan(
			&m.ID, &m.GiftID, &m.DateInUTC, &m.ReceiptSentInUTC, &m.EnactedByAgentID,
			&m.Kind, &m.Status, &m.ReferenceNumber, &m.GrossAmount, &m.Fee, &m.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction rows: %w", err)
	}
	return txns, nil
}
