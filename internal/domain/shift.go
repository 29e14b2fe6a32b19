package domain

import "time"

// Shift tracks a worker's clock-in/clock-out window.
type Shift struct {
	ID        string
	WorkerID  string
	StartedAt time.Time
	EndedAt   *time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open reports whether the shift has not been closed yet.
func (s Shift) Open() bool {
	return s.EndedAt == nil
}

// Duration returns the elapsed time for a closed shift, or zero while open.
func (s Shift) Duration() time.Duration {
	if s.EndedAt == nil {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}
