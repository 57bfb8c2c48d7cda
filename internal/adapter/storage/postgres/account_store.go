package postgres

import (
	"context"
	"errors"
	"fmt"

	"account-ledger/internal/core/domain"
	"account-ledger/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// AccountStore implements ports.AccountStore.
type AccountStore struct {
	pool Pool
}

// NewAccountStore creates a new AccountStore.
func NewAccountStore(pool Pool) *AccountStore {
	return &AccountStore{pool: pool}
}

// Create inserts a new account. The id is the owning user's id.
func (r *AccountStore) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (id, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, query, a.ID, a.Balance, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID fetches an account by id. Returns nil, nil when absent.
func (r *AccountStore) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `SELECT id, balance, created_at, updated_at FROM accounts WHERE id = $1`

	a := &domain.Account{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.Balance, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by id: %w", err)
	}
	return a, nil
}

// CompareAndSetBalance writes newBalance only if the stored balance still
// equals expectedBalance. A zero-row update means a concurrent writer got
// there first and is reported as ports.ErrBalanceConflict. Must be called
// within a transaction.
func (r *AccountStore) CompareAndSetBalance(ctx context.Context, tx pgx.Tx, id, expectedBalance, newBalance int64) error {
	query := `UPDATE accounts SET balance = $1, updated_at = NOW()
		WHERE id = $2 AND balance = $3`

	tag, err := tx.Exec(ctx, query, newBalance, id, expectedBalance)
	if err != nil {
		return fmt.Errorf("compare-and-set balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrBalanceConflict
	}
	return nil
}
