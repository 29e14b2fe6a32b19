package dto

import (
	"time"

	"github.com/spec-kit/bizops-service/internal/domain"
)

// RecordTransactionRequest payload. Amount is in minor currency units.
type RecordTransactionRequest struct {
	Type        string     `json:"type"`
	Amount      int64      `json:"amount"`
	Description string     `json:"description"`
	CustomerID  *string    `json:"customer_id"`
	OccurredAt  *time.Time `json:"occurred_at"`
}

// TransactionResponse is the public view of a transaction.
type TransactionResponse struct {
	ID             string                 `json:"id"`
	Type           domain.TransactionType `json:"type"`
	Amount         int64                  `json:"amount"`
	Description    string                 `json:"description,omitempty"`
	CustomerID     *string                `json:"customer_id,omitempty"`
	RecordedBy     string                 `json:"recorded_by"`
	RecordedByType domain.AccountType     `json:"recorded_by_type"`
	OccurredAt     time.Time              `json:"occurred_at"`
	CreatedAt      time.Time              `json:"created_at"`
}

// NewTransactionResponse maps the domain model.
func NewTransactionResponse(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:             tx.ID,
		Type:           tx.Type,
		Amount:         tx.Amount,
		Description:    tx.Description,
		CustomerID:     tx.CustomerID,
		RecordedBy:     tx.RecordedBy,
		RecordedByType: tx.RecordedByType,
		OccurredAt:     tx.OccurredAt,
		CreatedAt:      tx.CreatedAt,
	}
}

// TransactionSummaryResponse aggregates totals for a range.
type TransactionSummaryResponse struct {
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`
	Count       int64     `json:"count"`
	SaleTotal   int64     `json:"sale_total"`
	RefundTotal int64     `json:"refund_total"`
	PayoutTotal int64     `json:"payout_total"`
	Net         int64     `json:"net"`
}
