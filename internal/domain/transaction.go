package domain

import "time"

// TransactionType enumerates supported money movements.
type TransactionType string

const (
	TransactionTypeSale   TransactionType = "SALE"
	TransactionTypeRefund TransactionType = "REFUND"
	TransactionTypePayout TransactionType = "PAYOUT"
)

// Transaction records a single money movement. Amount is in minor
// currency units and always positive; Type carries the direction.
type Transaction struct {
	ID             string
	Type           TransactionType
	Amount         int64
	Description    string
	CustomerID     *string
	RecordedBy     string
	RecordedByType AccountType
	OccurredAt     time.Time
	CreatedAt      time.Time
}

// TransactionSummary aggregates totals for a reporting range.
type TransactionSummary struct {
	Count       int64
	SaleTotal   int64
	RefundTotal int64
	PayoutTotal int64
}

// Net returns sales minus refunds and payouts.
func (s TransactionSummary) Net() int64 {
	return s.SaleTotal - s.RefundTotal - s.PayoutTotal
}
