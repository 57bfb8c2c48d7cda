package integration

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"account-ledger/internal/core/domain"
	"account-ledger/internal/service"
	"account-ledger/pkg/apperror"
	"account-ledger/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentTransfers_ExactlyAffordableCountSucceeds floods one sender
// with concurrent identical transfers. The compare-and-set loop must let
// exactly floor(balance/amount) of them through: no double-spend, no lost
// update, and the money that leaves the sender arrives at the recipient.
func TestConcurrentTransfers_ExactlyAffordableCountSucceeds(t *testing.T) {
	ledger := newInMemoryLedger()
	accounts := newInMemoryAccountStore(ledger)
	txLog := newInMemoryTransactionLog(ledger)
	transactor := newInMemoryTransactor(ledger)

	// Retries sized well above the worst case so every failure is a real
	// validation verdict, not exhausted contention.
	svc := service.NewLedgerService(accounts, txLog, transactor, 1000, logger.New("error", false))

	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, accounts.Create(ctx, &domain.Account{ID: 1, Balance: 1000, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, accounts.Create(ctx, &domain.Account{ID: 2, Balance: 0, CreatedAt: now, UpdatedAt: now}))

	concurrency := 50
	amount := int64(30) // 1000 / 30 = 33 affordable transfers

	var wg sync.WaitGroup
	var successCount, insufficientCount atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Transfer(ctx, domain.TransferRequest{SenderID: 1, RecipientID: 2, Amount: amount})
			if err == nil {
				successCount.Add(1)
				return
			}
			var appErr *apperror.AppError
			if errors.As(err, &appErr) && appErr.Code == "LEDGER_001" {
				insufficientCount.Add(1)
				return
			}
			t.Errorf("unexpected error: %v", err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(33), successCount.Load())
	assert.Equal(t, int64(concurrency-33), insufficientCount.Load())

	// Conservation: sender lost exactly what the recipient gained.
	sender, err := accounts.GetByID(ctx, 1)
	require.NoError(t, err)
	recipient, err := accounts.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1000-33*30), sender.Balance)
	assert.Equal(t, int64(33*30), recipient.Balance)

	// One log record per committed transfer, none for rejected ones.
	records, err := txLog.ListFor(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, records, 33)
}

// TestConcurrentTransfers_BidirectionalConservation runs transfers in both
// directions at once; whatever interleaving wins, total money is constant.
func TestConcurrentTransfers_BidirectionalConservation(t *testing.T) {
	ledger := newInMemoryLedger()
	accounts := newInMemoryAccountStore(ledger)
	txLog := newInMemoryTransactionLog(ledger)
	transactor := newInMemoryTransactor(ledger)

	svc := service.NewLedgerService(accounts, txLog, transactor, 1000, logger.New("error", false))

	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, accounts.Create(ctx, &domain.Account{ID: 1, Balance: 500, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, accounts.Create(ctx, &domain.Account{ID: 2, Balance: 500, CreatedAt: now, UpdatedAt: now}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			req := domain.TransferRequest{SenderID: 1, RecipientID: 2, Amount: 7}
			if idx%2 == 0 {
				req = domain.TransferRequest{SenderID: 2, RecipientID: 1, Amount: 11}
			}
			// Insufficient-funds verdicts are fine here; partial writes are not.
			_, _ = svc.Transfer(ctx, req)
		}(i)
	}
	wg.Wait()

	a, err := accounts.GetByID(ctx, 1)
	require.NoError(t, err)
	b, err := accounts.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), a.Balance+b.Balance, "money must be conserved")
	assert.GreaterOrEqual(t, a.Balance, int64(0))
	assert.GreaterOrEqual(t, b.Balance, int64(0))
}

// TestConcurrentTransfers_HTTP drives the same scenario through the full
// HTTP stack. Statuses may be 201 (committed), 400 (insufficient funds) or
// 409 (retries exhausted); the invariant is that balances always add up.
func TestConcurrentTransfers_HTTP(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, aliceToken := app.signUp(t, "alice@example.com", "StrongPass123!")
	bobID, bobToken := app.signUp(t, "bob@example.com", "StrongPass123!")

	concurrency := 30
	amount := int64(40) // seed balance 500 covers at most 12

	var wg sync.WaitGroup
	var committed atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := app.doJSON(t, http.MethodPost, "/api/v1/transfers", aliceToken, map[string]int64{
				"recipient_id": bobID,
				"amount":       amount,
			})
			defer resp.Body.Close()
			switch resp.StatusCode {
			case http.StatusCreated:
				committed.Add(1)
			case http.StatusBadRequest, http.StatusConflict:
				// rejected cleanly
			default:
				t.Errorf("unexpected status %d", resp.StatusCode)
			}
		}()
	}
	wg.Wait()

	n := committed.Load()
	assert.LessOrEqual(t, n, int64(testSeedBalance)/amount, "sender can never overdraw")
	assert.Greater(t, n, int64(0), "at least one transfer must commit")

	// Final balances reflect exactly the committed transfers.
	resp := app.doJSON(t, http.MethodGet, "/api/v1/accounts/balance", aliceToken, nil)
	body := decodeJSON(t, resp)
	assert.Equal(t, float64(testSeedBalance-n*amount), body["data"].(map[string]interface{})["balance"])

	resp = app.doJSON(t, http.MethodGet, "/api/v1/accounts/balance", bobToken, nil)
	body = decodeJSON(t, resp)
	assert.Equal(t, float64(testSeedBalance+n*amount), body["data"].(map[string]interface{})["balance"])

	// The log agrees with the status codes.
	resp = app.doJSON(t, http.MethodGet, "/api/v1/transactions", bobToken, nil)
	body = decodeJSON(t, resp)
	received := body["data"].(map[string]interface{})["received"].([]interface{})
	assert.Len(t, received, int(n))
}
