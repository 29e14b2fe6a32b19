package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/bizops-service/internal/domain"
	"github.com/spec-kit/bizops-service/internal/events"
	apperrors "github.com/spec-kit/bizops-service/pkg/util"
)

func newShiftFixture(t *testing.T) (*ShiftService, *fakeShiftRepo, *domain.Worker, *fakeDispatcher) {
	t.Helper()
	shiftRepo := newFakeShiftRepo()
	workerRepo := newFakeWorkerRepo()
	dispatcher := &fakeDispatcher{}
	worker := &domain.Worker{Name: "Clerk", Email: "clerk@example.com", Role: domain.WorkerRoleStaff, Active: true}
	if err := workerRepo.Create(context.Background(), worker); err != nil {
		t.Fatalf("create worker: %v", err)
	}
	return NewShiftService(shiftRepo, workerRepo, dispatcher), shiftRepo, worker, dispatcher
}

func TestOpenShift(t *testing.T) {
	svc, repo, worker, _ := newShiftFixture(t)

	shift, err := svc.OpenShift(context.Background(), worker.ID, "morning")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !shift.Open() {
		t.Fatal("new shift should be open")
	}
	if shift.WorkerID != worker.ID || shift.Notes != "morning" {
		t.Fatalf("unexpected shift: %+v", shift)
	}
	if _, err := repo.GetByID(context.Background(), shift.ID); err != nil {
		t.Fatalf("shift not persisted: %v", err)
	}
}

func TestOpenShift_UnknownWorker(t *testing.T) {
	svc, _, _, _ := newShiftFixture(t)

	_, err := svc.OpenShift(context.Background(), "missing", "")
	var derr *apperrors.DomainError
	if !errors.As(err, &derr) || derr.Code != "NOT_FOUND" {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOpenShift_SecondOpenConflicts(t *testing.T) {
	svc, _, worker, _ := newShiftFixture(t)

	if _, err := svc.OpenShift(context.Background(), worker.ID, ""); err != nil {
		t.Fatalf("first open: %v", err)
	}

	_, err := svc.OpenShift(context.Background(), worker.ID, "")
	var derr *apperrors.DomainError
	if !errors.As(err, &derr) || derr.Code != "CONFLICT" {
		t.Fatalf("expected conflict for a second open shift, got %v", err)
	}
}

func TestCloseShift(t *testing.T) {
	svc, _, worker, dispatcher := newShiftFixture(t)
	shift, err := svc.OpenShift(context.Background(), worker.ID, "morning")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	closed, err := svc.CloseShift(context.Background(), shift.ID, "till counted")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Open() {
		t.Fatal("shift should be closed")
	}
	if closed.Notes != "till counted" {
		t.Fatalf("notes not replaced: %q", closed.Notes)
	}

	published := dispatcher.published()
	if len(published) != 1 || published[0].Type != events.EventShiftClosed {
		t.Fatalf("expected shift_closed event, got %+v", published)
	}
	payload := published[0].Payload.(events.ShiftClosedPayload)
	if payload.ShiftID != shift.ID || payload.WorkerID != worker.ID {
		t.Fatalf("payload incomplete: %+v", payload)
	}

	// The worker can clock in again after closing.
	if _, err := svc.OpenShift(context.Background(), worker.ID, ""); err != nil {
		t.Fatalf("reopen after close: %v", err)
	}
}

func TestCloseShift_AlreadyClosed(t *testing.T) {
	svc, _, worker, _ := newShiftFixture(t)
	shift, err := svc.OpenShift(context.Background(), worker.ID, "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := svc.CloseShift(context.Background(), shift.ID, ""); err != nil {
		t.Fatalf("close: %v", err)
	}

	_, err = svc.CloseShift(context.Background(), shift.ID, "")
	var derr *apperrors.DomainError
	if !errors.As(err, &derr) || derr.Code != "CONFLICT" {
		t.Fatalf("expected conflict on double close, got %v", err)
	}
}

func TestCloseShift_NotFound(t *testing.T) {
	svc, _, _, _ := newShiftFixture(t)

	_, err := svc.CloseShift(context.Background(), "missing", "")
	var derr *apperrors.DomainError
	if !errors.As(err, &derr) || derr.Code != "NOT_FOUND" {
		t.Fatalf("expected not found, got %v", err)
	}
}
