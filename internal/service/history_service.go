package service

import (
	"context"
	"fmt"

	"account-ledger/internal/core/domain"
	"account-ledger/internal/core/ports"
	"account-ledger/pkg/apperror"
)

// historyService implements ports.HistoryService. Read-only views over the
// transaction log and account balances; records are never mutated here.
type historyService struct {
	accounts ports.AccountStore
	txLog    ports.TransactionLog
}

// NewHistoryService creates a new history service.
func NewHistoryService(accounts ports.AccountStore, txLog ports.TransactionLog) ports.HistoryService {
	return &historyService{
		accounts: accounts,
		txLog:    txLog,
	}
}

// History returns the account's transfers split into sent and received,
// each preserving the log's time ordering.
func (s *historyService) History(ctx context.Context, accountID int64) (sent, received []domain.TransactionRecord, err error) {
	records, err := s.txLog.ListFor(ctx, accountID)
	if err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("list records: %w", err))
	}

	sent = []domain.TransactionRecord{}
	received = []domain.TransactionRecord{}
	for _, rec := range records {
		if rec.SenderID == accountID {
			sent = append(sent, rec)
		}
		if rec.RecipientID == accountID {
			received = append(received, rec)
		}
	}
	return sent, received, nil
}

// Balance returns the account's current balance in minor units.
func (s *historyService) Balance(ctx context.Context, accountID int64) (int64, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("load account: %w", err))
	}
	if account == nil {
		return 0, apperror.ErrAccountNotFound()
	}
	return account.Balance, nil
}
