package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bizops-service/internal/domain"
	"github.com/spec-kit/bizops-service/internal/events"
	"github.com/spec-kit/bizops-service/internal/repository"
	apperrors "github.com/spec-kit/bizops-service/pkg/util"
)

// ShiftService manages worker clock-in/clock-out windows.
type ShiftService struct {
	shifts     repository.ShiftRepository
	workers    repository.WorkerRepository
	dispatcher events.Dispatcher
}

// NewShiftService builds the service.
func NewShiftService(shifts repository.ShiftRepository, workers repository.WorkerRepository, dispatcher events.Dispatcher) *ShiftService {
	return &ShiftService{shifts: shifts, workers: workers, dispatcher: dispatcher}
}

// OpenShift clocks a worker in. A worker has at most one open shift.
func (s *ShiftService) OpenShift(ctx context.Context, workerID, notes string) (*domain.Shift, error) {
	if _, err := s.workers.GetByID(ctx, workerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("worker", nil)
		}
		return nil, err
	}

	if _, err := s.shifts.GetOpenByWorker(ctx, workerID); err == nil {
		return nil, apperrors.NewConflict("worker already has an open shift", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	shift := &domain.Shift{
		WorkerID:  workerID,
		StartedAt: time.Now(),
		Notes:     notes,
	}
	if err := s.shifts.Create(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// CloseShift clocks the shift out and records its duration.
func (s *ShiftService) CloseShift(ctx context.Context, id, notes string) (*domain.Shift, error) {
	shift, err := s.GetShift(ctx, id)
	if err != nil {
		return nil, err
	}
	if !shift.Open() {
		return nil, apperrors.NewConflict("shift already closed", nil)
	}

	now := time.Now()
	shift.EndedAt = &now
	if notes != "" {
		shift.Notes = notes
	}
	if err := s.shifts.Update(ctx, shift); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventShiftClosed,
			Timestamp: now,
			Payload: events.ShiftClosedPayload{
				ShiftID:  shift.ID,
				WorkerID: shift.WorkerID,
				Duration: shift.Duration(),
			},
		})
	}
	return shift, nil
}

// GetShift fetches by id.
func (s *ShiftService) GetShift(ctx context.Context, id string) (*domain.Shift, error) {
	shift, err := s.shifts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("shift", nil)
		}
		return nil, err
	}
	return shift, nil
}

// ListShifts lists with the given filter.
func (s *ShiftService) ListShifts(ctx context.Context, filter repository.ShiftFilter) ([]domain.Shift, error) {
	return s.shifts.List(ctx, filter)
}
