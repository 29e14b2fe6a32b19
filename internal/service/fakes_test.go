package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bizops-service/internal/domain"
	"github.com/spec-kit/bizops-service/internal/events"
	"github.com/spec-kit/bizops-service/internal/repository"
)

// --- in-memory repository fakes ---

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	user.ID = fmt.Sprintf("user-%d", f.seq)
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) UpdatePasswordHash(_ context.Context, id, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == strings.ToLower(email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeWorkerRepo struct {
	mu      sync.Mutex
	seq     int
	workers map[string]*domain.Worker
}

func newFakeWorkerRepo() *fakeWorkerRepo {
	return &fakeWorkerRepo{workers: map[string]*domain.Worker{}}
}

func (f *fakeWorkerRepo) Create(_ context.Context, worker *domain.Worker) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	worker.ID = fmt.Sprintf("worker-%d", f.seq)
	worker.Email = strings.ToLower(worker.Email)
	worker.CreatedAt = time.Now()
	worker.UpdatedAt = worker.CreatedAt
	clone := *worker
	f.workers[worker.ID] = &clone
	return nil
}

func (f *fakeWorkerRepo) Update(_ context.Context, worker *domain.Worker) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.workers[worker.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *worker
	f.workers[worker.ID] = &clone
	return nil
}

func (f *fakeWorkerRepo) UpdatePasswordHash(_ context.Context, id, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	worker, ok := f.workers[id]
	if !ok {
		return pgx.ErrNoRows
	}
	worker.PasswordHash = passwordHash
	return nil
}

func (f *fakeWorkerRepo) GetByID(_ context.Context, id string) (*domain.Worker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	worker, ok := f.workers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *worker
	return &clone, nil
}

func (f *fakeWorkerRepo) GetByEmail(_ context.Context, email string) (*domain.Worker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, worker := range f.workers {
		if worker.Email == strings.ToLower(email) {
			clone := *worker
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeWorkerRepo) List(_ context.Context, _ repository.WorkerFilter) ([]domain.Worker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Worker
	for _, worker := range f.workers {
		result = append(result, *worker)
	}
	return result, nil
}

func (f *fakeWorkerRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.workers[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.workers, id)
	return nil
}

type fakeResetRepo struct {
	mu     sync.Mutex
	seq    int
	tokens map[string]*repository.ResetToken
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: map[string]*repository.ResetToken{}}
}

func (f *fakeResetRepo) Create(_ context.Context, token *repository.ResetToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	token.ID = fmt.Sprintf("token-%d", f.seq)
	token.CreatedAt = time.Now()
	clone := *token
	f.tokens[token.ID] = &clone
	return nil
}

func (f *fakeResetRepo) GetByTokenHash(_ context.Context, tokenHash string) (*repository.ResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, token := range f.tokens {
		if token.TokenHash == tokenHash {
			clone := *token
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeResetRepo) MarkUsed(_ context.Context, id string, usedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	token, ok := f.tokens[id]
	if !ok || token.UsedAt != nil {
		return pgx.ErrNoRows
	}
	token.UsedAt = &usedAt
	return nil
}

func (f *fakeResetRepo) DeleteByID(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, id)
	return nil
}

func (f *fakeResetRepo) DeleteForAccount(_ context.Context, accountType domain.AccountType, accountID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, token := range f.tokens {
		if token.AccountType == accountType && token.AccountID == accountID {
			delete(f.tokens, id)
		}
	}
	return nil
}

func (f *fakeResetRepo) DeleteForAccountExcept(_ context.Context, accountType domain.AccountType, accountID, exceptID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, token := range f.tokens {
		if id != exceptID && token.AccountType == accountType && token.AccountID == accountID {
			delete(f.tokens, id)
		}
	}
	return nil
}

func (f *fakeResetRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var removed int64
	for id, token := range f.tokens {
		if token.ExpiresAt.Before(now) {
			delete(f.tokens, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeResetRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tokens)
}

func (f *fakeResetRepo) get(id string) *repository.ResetToken {
	f.mu.Lock()
	defer f.mu.Unlock()
	token, ok := f.tokens[id]
	if !ok {
		return nil
	}
	clone := *token
	return &clone
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	seq       int
	customers map[string]*domain.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[string]*domain.Customer{}}
}

func (f *fakeCustomerRepo) Create(_ context.Context, customer *domain.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	customer.ID = fmt.Sprintf("customer-%d", f.seq)
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt
	clone := *customer
	f.customers[customer.ID] = &clone
	return nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, customer *domain.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.customers[customer.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *customer
	f.customers[customer.ID] = &clone
	return nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	customer, ok := f.customers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *customer
	return &clone, nil
}

func (f *fakeCustomerRepo) List(_ context.Context, _ repository.CustomerFilter) ([]domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Customer
	for _, customer := range f.customers {
		result = append(result, *customer)
	}
	return result, nil
}

func (f *fakeCustomerRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.customers[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.customers, id)
	return nil
}

func (f *fakeCustomerRepo) AdjustBalance(_ context.Context, id string, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	customer, ok := f.customers[id]
	if !ok {
		return pgx.ErrNoRows
	}
	customer.Balance += delta
	return nil
}

type fakeTransactionRepo struct {
	mu           sync.Mutex
	seq          int
	transactions map[string]*domain.Transaction
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{transactions: map[string]*domain.Transaction{}}
}

func (f *fakeTransactionRepo) Create(_ context.Context, tx *domain.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	tx.ID = fmt.Sprintf("tx-%d", f.seq)
	tx.CreatedAt = time.Now()
	clone := *tx
	f.transactions[tx.ID] = &clone
	return nil
}

func (f *fakeTransactionRepo) GetByID(_ context.Context, id string) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tx, ok := f.transactions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *tx
	return &clone, nil
}

func (f *fakeTransactionRepo) List(_ context.Context, _ repository.TransactionFilter) ([]domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Transaction
	for _, tx := range f.transactions {
		result = append(result, *tx)
	}
	return result, nil
}

func (f *fakeTransactionRepo) Summarize(_ context.Context, from, to time.Time) (*domain.TransactionSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	summary := &domain.TransactionSummary{}
	for _, tx := range f.transactions {
		if tx.OccurredAt.Before(from) || !tx.OccurredAt.Before(to) {
			continue
		}
		summary.Count++
		switch tx.Type {
		case domain.TransactionTypeSale:
			summary.SaleTotal += tx.Amount
		case domain.TransactionTypeRefund:
			summary.RefundTotal += tx.Amount
		case domain.TransactionTypePayout:
			summary.PayoutTotal += tx.Amount
		}
	}
	return summary, nil
}

type fakeShiftRepo struct {
	mu     sync.Mutex
	seq    int
	shifts map[string]*domain.Shift
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: map[string]*domain.Shift{}}
}

func (f *fakeShiftRepo) Create(_ context.Context, shift *domain.Shift) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	shift.ID = fmt.Sprintf("shift-%d", f.seq)
	shift.CreatedAt = time.Now()
	shift.UpdatedAt = shift.CreatedAt
	clone := *shift
	f.shifts[shift.ID] = &clone
	return nil
}

func (f *fakeShiftRepo) Update(_ context.Context, shift *domain.Shift) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.shifts[shift.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *shift
	f.shifts[shift.ID] = &clone
	return nil
}

func (f *fakeShiftRepo) GetByID(_ context.Context, id string) (*domain.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	shift, ok := f.shifts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *shift
	return &clone, nil
}

func (f *fakeShiftRepo) GetOpenByWorker(_ context.Context, workerID string) (*domain.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, shift := range f.shifts {
		if shift.WorkerID == workerID && shift.EndedAt == nil {
			clone := *shift
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeShiftRepo) List(_ context.Context, _ repository.ShiftFilter) ([]domain.Shift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Shift
	for _, shift := range f.shifts {
		result = append(result, *shift)
	}
	return result, nil
}

// fakeDispatcher records published events synchronously.
type fakeDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (f *fakeDispatcher) Publish(_ context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func (f *fakeDispatcher) published() []events.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]events.Event{}, f.events...)
}
