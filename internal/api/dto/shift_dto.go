package dto

import (
	"time"

	"github.com/spec-kit/bizops-service/internal/domain"
)

// OpenShiftRequest payload for clocking in.
type OpenShiftRequest struct {
	WorkerID string `json:"worker_id"`
	Notes    string `json:"notes"`
}

// CloseShiftRequest payload for clocking out.
type CloseShiftRequest struct {
	Notes string `json:"notes"`
}

// ShiftResponse is the public view of a shift.
type ShiftResponse struct {
	ID              string     `json:"id"`
	WorkerID        string     `json:"worker_id"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	DurationSeconds int64      `json:"duration_seconds,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewShiftResponse maps the domain model.
func NewShiftResponse(shift *domain.Shift) ShiftResponse {
	return ShiftResponse{
		ID:              shift.ID,
		WorkerID:        shift.WorkerID,
		StartedAt:       shift.StartedAt,
		EndedAt:         shift.EndedAt,
		DurationSeconds: int64(shift.Duration().Seconds()),
		Notes:           shift.Notes,
		CreatedAt:       shift.CreatedAt,
		UpdatedAt:       shift.UpdatedAt,
	}
}
