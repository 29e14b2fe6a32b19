package events

import (
	"time"

	"github.com/spec-kit/bizops-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPasswordResetRequested EventType = "password_reset_requested"
	EventWorkerCreated          EventType = "worker_created"
	EventShiftClosed            EventType = "shift_closed"
	EventTransactionRecorded    EventType = "transaction_recorded"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// PasswordResetRequestedPayload carries what the mail listener needs to build
// the reset message. RawToken is the unhashed secret; it is never persisted
// or logged, only forwarded into the outbound email.
type PasswordResetRequestedPayload struct {
	AccountType domain.AccountType `json:"account_type"`
	AccountID   string             `json:"account_id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	RawToken    string             `json:"-"`
	ExpiresAt   time.Time          `json:"expires_at"`
}

// WorkerCreatedPayload payload.
type WorkerCreatedPayload struct {
	WorkerID        string            `json:"worker_id"`
	Role            domain.WorkerRole `json:"role"`
	DefaultPassword bool              `json:"default_password"`
}

// ShiftClosedPayload payload.
type ShiftClosedPayload struct {
	ShiftID  string        `json:"shift_id"`
	WorkerID string        `json:"worker_id"`
	Duration time.Duration `json:"duration"`
}

// TransactionRecordedPayload payload.
type TransactionRecordedPayload struct {
	TransactionID string                 `json:"transaction_id"`
	Type          domain.TransactionType `json:"type"`
	Amount        int64                  `json:"amount"`
}
