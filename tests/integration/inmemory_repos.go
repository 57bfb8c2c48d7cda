package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"account-ledger/internal/core/domain"
	"account-ledger/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// inMemoryLedger is the shared state behind the in-memory account store,
// transaction log, and transactor. Compare-and-set writes are staged on a
// memTx and applied atomically at commit, so a rolled-back attempt leaves
// no partial transfer — the same visibility the postgres adapters get from
// a real transaction.
type inMemoryLedger struct {
	mu           sync.Mutex
	accounts     map[int64]*domain.Account
	held         map[int64]*memTx // account id -> staging transaction
	records      []domain.TransactionRecord
	nextRecordID int64
}

func newInMemoryLedger() *inMemoryLedger {
	return &inMemoryLedger{
		accounts:     make(map[int64]*domain.Account),
		held:         make(map[int64]*memTx),
		nextRecordID: 1,
	}
}

// --- In-Memory Account Store ---

type inMemoryAccountStore struct {
	l *inMemoryLedger
}

func newInMemoryAccountStore(l *inMemoryLedger) *inMemoryAccountStore {
	return &inMemoryAccountStore{l: l}
}

func (r *inMemoryAccountStore) Create(ctx context.Context, a *domain.Account) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if _, ok := r.l.accounts[a.ID]; ok {
		return fmt.Errorf("account already exists: %d", a.ID)
	}
	cp := *a
	r.l.accounts[a.ID] = &cp
	return nil
}

func (r *inMemoryAccountStore) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	a, ok := r.l.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *inMemoryAccountStore) CompareAndSetBalance(ctx context.Context, tx pgx.Tx, id, expectedBalance, newBalance int64) error {
	mtx, ok := tx.(*memTx)
	if !ok {
		return fmt.Errorf("unexpected tx type %T", tx)
	}

	r.l.mu.Lock()
	defer r.l.mu.Unlock()

	a, ok := r.l.accounts[id]
	if !ok {
		return ports.ErrBalanceConflict
	}
	// A row held by another in-flight transaction behaves like a lost
	// update: report a conflict so the caller retries.
	if holder, staged := r.l.held[id]; staged && holder != mtx {
		return ports.ErrBalanceConflict
	}
	if a.Balance != expectedBalance {
		return ports.ErrBalanceConflict
	}

	mtx.writes = append(mtx.writes, stagedWrite{id: id, balance: newBalance})
	r.l.held[id] = mtx
	return nil
}

// --- In-Memory Transaction Log ---

type inMemoryTransactionLog struct {
	l *inMemoryLedger
}

func newInMemoryTransactionLog(l *inMemoryLedger) *inMemoryTransactionLog {
	return &inMemoryTransactionLog{l: l}
}

func (r *inMemoryTransactionLog) Append(ctx context.Context, tx pgx.Tx, rec *domain.TransactionRecord) error {
	mtx, ok := tx.(*memTx)
	if !ok {
		return fmt.Errorf("unexpected tx type %T", tx)
	}
	mtx.pending = append(mtx.pending, rec)
	return nil
}

func (r *inMemoryTransactionLog) ListFor(ctx context.Context, accountID int64) ([]domain.TransactionRecord, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()

	var out []domain.TransactionRecord
	for _, rec := range r.l.records {
		if rec.Involves(accountID) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- In-Memory Transactor ---

type inMemoryTransactor struct {
	l *inMemoryLedger
}

func newInMemoryTransactor(l *inMemoryLedger) *inMemoryTransactor {
	return &inMemoryTransactor{l: l}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &memTx{l: t.l}, nil
}

type stagedWrite struct {
	id      int64
	balance int64
}

// memTx implements pgx.Tx over the in-memory ledger. Balance writes and
// record appends are buffered until Commit; Rollback discards them and
// releases the staged rows.
type memTx struct {
	l       *inMemoryLedger
	writes  []stagedWrite
	pending []*domain.TransactionRecord
	done    bool
}

func (t *memTx) Commit(ctx context.Context) error {
	t.l.mu.Lock()
	defer t.l.mu.Unlock()
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true

	for _, w := range t.writes {
		t.l.accounts[w.id].Balance = w.balance
		delete(t.l.held, w.id)
	}
	for _, rec := range t.pending {
		rec.ID = t.l.nextRecordID
		t.l.nextRecordID++
		t.l.records = append(t.l.records, *rec)
	}
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	t.l.mu.Lock()
	defer t.l.mu.Unlock()
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true

	for _, w := range t.writes {
		delete(t.l.held, w.id)
	}
	t.writes = nil
	t.pending = nil
	return nil
}

func (t *memTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *memTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *memTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *memTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *memTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *memTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *memTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *memTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *memTx) Conn() *pgx.Conn { return nil }

// --- In-Memory User Repo ---

type inMemoryUserRepo struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	nextID int64
}

func newInMemoryUserRepo() *inMemoryUserRepo {
	return &inMemoryUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func (r *inMemoryUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return fmt.Errorf("email already exists")
		}
	}
	u.ID = r.nextID
	r.nextID++
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *inMemoryUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *inMemoryUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryUserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
