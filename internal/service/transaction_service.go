package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bizops-service/internal/auth"
	"github.com/spec-kit/bizops-service/internal/domain"
	"github.com/spec-kit/bizops-service/internal/events"
	"github.com/spec-kit/bizops-service/internal/repository"
	apperrors "github.com/spec-kit/bizops-service/pkg/util"
)

// TransactionService records and reports on money movements.
type TransactionService struct {
	transactions repository.TransactionRepository
	customers    repository.CustomerRepository
	dispatcher   events.Dispatcher
}

// NewTransactionService builds the service.
func NewTransactionService(transactions repository.TransactionRepository, customers repository.CustomerRepository, dispatcher events.Dispatcher) *TransactionService {
	return &TransactionService{transactions: transactions, customers: customers, dispatcher: dispatcher}
}

// RecordTransactionInput carries creation fields.
type RecordTransactionInput struct {
	Type        domain.TransactionType
	Amount      int64
	Description string
	CustomerID  *string
	OccurredAt  *time.Time
}

// RecordTransaction stores a movement and adjusts the customer balance when
// one is referenced. Sales increase the balance, refunds decrease it.
func (s *TransactionService) RecordTransaction(ctx context.Context, recordedBy *auth.Identity, input RecordTransactionInput) (*domain.Transaction, error) {
	switch input.Type {
	case domain.TransactionTypeSale, domain.TransactionTypeRefund, domain.TransactionTypePayout:
	default:
		return nil, apperrors.NewValidationError("type must be SALE, REFUND or PAYOUT", nil)
	}
	if input.Amount <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive", nil)
	}

	occurredAt := time.Now()
	if input.OccurredAt != nil {
		occurredAt = *input.OccurredAt
	}

	if input.CustomerID != nil {
		if _, err := s.customers.GetByID(ctx, *input.CustomerID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("customer does not exist", nil)
			}
			return nil, err
		}
	}

	tx := &domain.Transaction{
		Type:           input.Type,
		Amount:         input.Amount,
		Description:    input.Description,
		CustomerID:     input.CustomerID,
		RecordedBy:     recordedBy.ID,
		RecordedByType: recordedBy.AccountType,
		OccurredAt:     occurredAt,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}

	if tx.CustomerID != nil && tx.Type != domain.TransactionTypePayout {
		delta := tx.Amount
		if tx.Type == domain.TransactionTypeRefund {
			delta = -delta
		}
		// The balance must track the ledger; a failed adjustment is a hard
		// failure, not a quiet divergence.
		if err := s.customers.AdjustBalance(ctx, *tx.CustomerID, delta); err != nil {
			return nil, err
		}
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTransactionRecorded,
			Timestamp: time.Now(),
			Payload: events.TransactionRecordedPayload{
				TransactionID: tx.ID,
				Type:          tx.Type,
				Amount:        tx.Amount,
			},
		})
	}
	return tx, nil
}

// GetTransaction fetches by id.
func (s *TransactionService) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("transaction", nil)
		}
		return nil, err
	}
	return tx, nil
}

// ListTransactions lists with the given filter.
func (s *TransactionService) ListTransactions(ctx context.Context, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	return s.transactions.List(ctx, filter)
}

// Summarize aggregates totals for the range [from, to).
func (s *TransactionService) Summarize(ctx context.Context, from, to time.Time) (*domain.TransactionSummary, error) {
	if !to.After(from) {
		return nil, apperrors.NewValidationError("to must be after from", nil)
	}
	return s.transactions.Summarize(ctx, from, to)
}
