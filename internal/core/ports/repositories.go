package ports

import (
	"context"
	"errors"

	"account-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// ErrBalanceConflict is returned by AccountStore.CompareAndSetBalance when
// the stored balance no longer matches the expected value, i.e. a concurrent
// transfer committed first. Callers retry the whole attempt from fresh
// snapshots.
var ErrBalanceConflict = errors.New("account balance changed concurrently")

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// AccountStore defines persistence operations for account balances.
// CompareAndSetBalance is the sole mutation primitive; methods accepting
// pgx.Tx run inside the atomic transfer unit.
type AccountStore interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	// CompareAndSetBalance writes newBalance only if the stored balance
	// still equals expectedBalance. Returns ErrBalanceConflict otherwise.
	CompareAndSetBalance(ctx context.Context, tx pgx.Tx, id, expectedBalance, newBalance int64) error
}

// TransactionLog is the append-only record of completed transfers.
// Append is called only from inside the atomic transfer unit.
type TransactionLog interface {
	Append(ctx context.Context, tx pgx.Tx, record *domain.TransactionRecord) error
	ListFor(ctx context.Context, accountID int64) ([]domain.TransactionRecord, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
