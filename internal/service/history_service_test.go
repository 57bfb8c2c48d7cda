package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"account-ledger/internal/core/domain"
	"account-ledger/internal/core/ports/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHistoryService_History_SplitsSentAndReceived(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := mocks.NewMockAccountStore(ctrl)
	txLog := mocks.NewMockTransactionLog(ctrl)
	svc := NewHistoryService(accounts, txLog)

	ctx := context.Background()
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	records := []domain.TransactionRecord{
		{ID: 1, SenderID: 5, RecipientID: 2, Amount: 30, CreatedAt: t0},
		{ID: 2, SenderID: 3, RecipientID: 5, Amount: 10, CreatedAt: t0.Add(time.Minute)},
		{ID: 3, SenderID: 5, RecipientID: 3, Amount: 5, CreatedAt: t0.Add(2 * time.Minute)},
	}
	txLog.EXPECT().ListFor(ctx, int64(5)).Return(records, nil)

	sent, received, err := svc.History(ctx, 5)
	require.NoError(t, err)

	require.Len(t, sent, 2)
	assert.Equal(t, int64(1), sent[0].ID)
	assert.Equal(t, int64(3), sent[1].ID)

	require.Len(t, received, 1)
	assert.Equal(t, int64(2), received[0].ID)
}

func TestHistoryService_History_SelfTransferlessAccountIsEmptyNotNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := mocks.NewMockAccountStore(ctrl)
	txLog := mocks.NewMockTransactionLog(ctrl)
	svc := NewHistoryService(accounts, txLog)

	ctx := context.Background()
	txLog.EXPECT().ListFor(ctx, int64(9)).Return(nil, nil)

	sent, received, err := svc.History(ctx, 9)
	require.NoError(t, err)
	// Empty slices, not nil: the handler serializes these as [].
	assert.NotNil(t, sent)
	assert.NotNil(t, received)
	assert.Empty(t, sent)
	assert.Empty(t, received)
}

func TestHistoryService_History_LogFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := mocks.NewMockAccountStore(ctrl)
	txLog := mocks.NewMockTransactionLog(ctrl)
	svc := NewHistoryService(accounts, txLog)

	ctx := context.Background()
	txLog.EXPECT().ListFor(ctx, int64(5)).Return(nil, errors.New("connection refused"))

	sent, received, err := svc.History(ctx, 5)
	assert.Nil(t, sent)
	assert.Nil(t, received)
	assertAppError(t, err, "SYS_001")
}

func TestHistoryService_Balance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := mocks.NewMockAccountStore(ctrl)
	txLog := mocks.NewMockTransactionLog(ctrl)
	svc := NewHistoryService(accounts, txLog)

	ctx := context.Background()
	accounts.EXPECT().GetByID(ctx, int64(5)).Return(&domain.Account{ID: 5, Balance: 120}, nil)

	balance, err := svc.Balance(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(120), balance)
}

func TestHistoryService_Balance_AccountNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := mocks.NewMockAccountStore(ctrl)
	txLog := mocks.NewMockTransactionLog(ctrl)
	svc := NewHistoryService(accounts, txLog)

	ctx := context.Background()
	accounts.EXPECT().GetByID(ctx, int64(404)).Return(nil, nil)

	_, err := svc.Balance(ctx, 404)
	assertAppError(t, err, "LEDGER_003")
}
