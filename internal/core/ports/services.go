package ports

import (
	"context"
	"time"

	"account-ledger/internal/core/domain"
)

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(userID int64) (string, time.Time, error)
	Validate(tokenString string) (int64, error)
}

// --- Service Ports (Business Logic) ---

// LedgerService performs exactly-once, all-or-nothing funds transfers.
type LedgerService interface {
	Transfer(ctx context.Context, req domain.TransferRequest) (*domain.TransactionRecord, error)
}

// AuthService defines sign-up and sign-in business logic.
type AuthService interface {
	SignUp(ctx context.Context, req SignUpRequest) (*AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)
	CurrentUser(ctx context.Context, userID int64) (*AuthResult, error)
}

// SignUpRequest holds input for user registration.
type SignUpRequest struct {
	Email    string
	Password string
}

// AuthResult holds the authenticated user and a freshly issued token.
type AuthResult struct {
	User        *domain.User
	Token       string
	TokenExpiry time.Time
}

// HistoryService exposes per-account views of the ledger.
type HistoryService interface {
	// History splits the account's records into transfers it sent and
	// transfers it received, each ordered by time.
	History(ctx context.Context, accountID int64) (sent, received []domain.TransactionRecord, err error)
	Balance(ctx context.Context, accountID int64) (int64, error)
}
