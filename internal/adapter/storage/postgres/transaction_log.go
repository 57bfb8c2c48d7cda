package postgres

import (
	"context"
	"fmt"

	"account-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// TransactionLog implements ports.TransactionLog. Records are append-only;
// there is no update or delete path.
type TransactionLog struct {
	pool Pool
}

// NewTransactionLog creates a new TransactionLog.
func NewTransactionLog(pool Pool) *TransactionLog {
	return &TransactionLog{pool: pool}
}

// Append inserts a transfer record within a database transaction and fills
// in the assigned id.
func (r *TransactionLog) Append(ctx context.Context, tx pgx.Tx, rec *domain.TransactionRecord) error {
	query := `INSERT INTO transactions (sender_id, recipient_id, amount, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id`

	err := tx.QueryRow(ctx, query, rec.SenderID, rec.RecipientID, rec.Amount, rec.CreatedAt).
		Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("insert transaction record: %w", err)
	}
	return nil
}

// ListFor returns every record the account participated in, oldest first.
func (r *TransactionLog) ListFor(ctx context.Context, accountID int64) ([]domain.TransactionRecord, error) {
	query := `SELECT id, sender_id, recipient_id, amount, created_at
		FROM transactions WHERE sender_id = $1 OR recipient_id = $1
		ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list transaction records: %w", err)
	}
	defer rows.Close()

	var records []domain.TransactionRecord
	for rows.Next() {
		var rec domain.TransactionRecord
		if err := rows.Scan(&rec.ID, &rec.SenderID, &rec.RecipientID, &rec.Amount, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction records: %w", err)
	}
	return records, nil
}
