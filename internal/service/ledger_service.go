package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"account-ledger/internal/core/domain"
	"account-ledger/internal/core/ports"
	"account-ledger/pkg/apperror"

	"github.com/rs/zerolog"
)

// LedgerServiceImpl implements ports.LedgerService. It is the concurrency
// boundary: both balance mutations and the transaction-record append commit
// as a single database transaction, guarded by compare-and-set against the
// balances read at the top of the attempt. A conflict on either account
// aborts the whole attempt and retries from fresh snapshots.
type LedgerServiceImpl struct {
	accounts   ports.AccountStore
	txLog      ports.TransactionLog
	transactor ports.DBTransactor
	maxRetries int
	log        zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl. maxRetries bounds the
// optimistic-concurrency retry loop; values below 1 fall back to 1.
func NewLedgerService(
	accounts ports.AccountStore,
	txLog ports.TransactionLog,
	transactor ports.DBTransactor,
	maxRetries int,
	log zerolog.Logger,
) *LedgerServiceImpl {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &LedgerServiceImpl{
		accounts:   accounts,
		txLog:      txLog,
		transactor: transactor,
		maxRetries: maxRetries,
		log:        log,
	}
}

// Transfer applies a funds transfer exactly once, all-or-nothing.
//
// Per attempt: load both snapshots, validate, then debit sender and credit
// recipient via compare-and-set and append the record, all inside one
// database transaction. Validation failures are returned verbatim and never
// retried. Balance conflicts retry the whole attempt up to the configured
// bound; exhaustion is reported as a distinct contention error the caller
// may resubmit. Store failures propagate wrapped and abort without partial
// mutation.
func (s *LedgerServiceImpl) Transfer(ctx context.Context, req domain.TransferRequest) (*domain.TransactionRecord, error) {
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		record, err := s.attempt(ctx, req)
		if errors.Is(err, ports.ErrBalanceConflict) {
			s.log.Debug().
				Int64("sender_id", req.SenderID).
				Int64("recipient_id", req.RecipientID).
				Int("attempt", attempt).
				Msg("transfer conflicted, retrying with fresh snapshots")
			continue
		}
		if err != nil {
			return nil, err
		}

		s.log.Info().
			Int64("record_id", record.ID).
			Int64("sender_id", record.SenderID).
			Int64("recipient_id", record.RecipientID).
			Int64("amount", record.Amount).
			Int("attempt", attempt).
			Msg("transfer committed")
		return record, nil
	}

	s.log.Warn().
		Int64("sender_id", req.SenderID).
		Int64("recipient_id", req.RecipientID).
		Int("max_retries", s.maxRetries).
		Msg("transfer retries exhausted")
	return nil, apperror.ErrContention()
}

// attempt runs one optimistic transfer attempt. It returns
// ports.ErrBalanceConflict when a concurrent commit invalidated either
// snapshot; the caller retries.
func (s *LedgerServiceImpl) attempt(ctx context.Context, req domain.TransferRequest) (*domain.TransactionRecord, error) {
	// Snapshot both accounts. nil means absent.
	sender, err := s.accounts.GetByID(ctx, req.SenderID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load sender: %w", err))
	}
	recipient, err := s.accounts.GetByID(ctx, req.RecipientID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load recipient: %w", err))
	}

	// Gate the attempt. Runs on every retry so the verdict always reflects
	// the snapshots the compare-and-set writes are conditioned on.
	if violations := ValidateTransfer(req, sender, recipient); len(violations) > 0 {
		return nil, apperror.ValidationFailed(violations)
	}

	// Atomic unit: both balance writes and the record append commit
	// together or not at all.
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.accounts.CompareAndSetBalance(ctx, dbTx, sender.ID, sender.Balance, sender.Balance-req.Amount); err != nil {
		if errors.Is(err, ports.ErrBalanceConflict) {
			return nil, err
		}
		return nil, apperror.InternalError(fmt.Errorf("debit sender: %w", err))
	}

	if err := s.accounts.CompareAndSetBalance(ctx, dbTx, recipient.ID, recipient.Balance, recipient.Balance+req.Amount); err != nil {
		if errors.Is(err, ports.ErrBalanceConflict) {
			return nil, err
		}
		return nil, apperror.InternalError(fmt.Errorf("credit recipient: %w", err))
	}

	record := &domain.TransactionRecord{
		SenderID:    req.SenderID,
		RecipientID: req.RecipientID,
		Amount:      req.Amount,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.txLog.Append(ctx, dbTx, record); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append record: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	return record, nil
}
