package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bizops-service/internal/auth"
	"github.com/spec-kit/bizops-service/internal/config"
	"github.com/spec-kit/bizops-service/internal/domain"
	"github.com/spec-kit/bizops-service/internal/events"
	"github.com/spec-kit/bizops-service/internal/repository"
	apperrors "github.com/spec-kit/bizops-service/pkg/util"
)

// Role-dependent bootstrap passwords assigned when a worker is created
// without one. A convenience for onboarding, not a security control; the
// caller is expected to force a change.
const (
	DefaultAdminPassword = "admin123"
	DefaultStaffPassword = "staff123"
)

// WorkerService manages employee accounts.
type WorkerService struct {
	workers    repository.WorkerRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewWorkerService builds the service.
func NewWorkerService(cfg config.Config, workers repository.WorkerRepository, dispatcher events.Dispatcher) *WorkerService {
	return &WorkerService{
		workers:    workers,
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// CreateWorkerInput carries creation fields. Password may be empty, in which
// case the role default is assigned.
type CreateWorkerInput struct {
	Name     string
	Email    string
	Phone    string
	Role     domain.WorkerRole
	Password string
}

// CreateWorker creates an employee account.
func (s *WorkerService) CreateWorker(ctx context.Context, input CreateWorkerInput) (*domain.Worker, error) {
	if input.Role != domain.WorkerRoleAdmin && input.Role != domain.WorkerRoleStaff {
		return nil, apperrors.NewValidationError("role must be admin or staff", nil)
	}

	email := NormalizeEmail(input.Email)
	if _, err := s.workers.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewValidationError("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	usedDefault := false
	password := input.Password
	if password == "" {
		password = DefaultPasswordForRole(input.Role)
		usedDefault = true
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	worker := &domain.Worker{
		Name:         input.Name,
		Email:        email,
		Phone:        input.Phone,
		PasswordHash: hash,
		Role:         input.Role,
		Active:       true,
	}
	if err := s.workers.Create(ctx, worker); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventWorkerCreated,
			Timestamp: time.Now(),
			Payload: events.WorkerCreatedPayload{
				WorkerID:        worker.ID,
				Role:            worker.Role,
				DefaultPassword: usedDefault,
			},
		})
	}
	return worker, nil
}

// GetWorker fetches by id.
func (s *WorkerService) GetWorker(ctx context.Context, id string) (*domain.Worker, error) {
	worker, err := s.workers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("worker", nil)
		}
		return nil, err
	}
	return worker, nil
}

// ListWorkers lists with the given filter.
func (s *WorkerService) ListWorkers(ctx context.Context, filter repository.WorkerFilter) ([]domain.Worker, error) {
	return s.workers.List(ctx, filter)
}

// UpdateWorkerInput carries full-update fields. An empty Password means the
// credential is left untouched.
type UpdateWorkerInput struct {
	Name     string
	Email    string
	Phone    string
	Role     domain.WorkerRole
	Active   bool
	Password string
}

// UpdateWorker replaces the mutable fields of a worker.
func (s *WorkerService) UpdateWorker(ctx context.Context, id string, input UpdateWorkerInput) (*domain.Worker, error) {
	worker, err := s.GetWorker(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Role != domain.WorkerRoleAdmin && input.Role != domain.WorkerRoleStaff {
		return nil, apperrors.NewValidationError("role must be admin or staff", nil)
	}

	worker.Name = input.Name
	worker.Email = NormalizeEmail(input.Email)
	worker.Phone = input.Phone
	worker.Role = input.Role
	worker.Active = input.Active
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		worker.PasswordHash = hash
	}

	if err := s.workers.Update(ctx, worker); err != nil {
		return nil, err
	}
	return worker, nil
}

// PatchWorker applies a partial update. The credential field is detected
// both at the top level and nested under a "set" clause, and is always
// hashed before persisting.
func (s *WorkerService) PatchWorker(ctx context.Context, id string, patch map[string]any) (*domain.Worker, error) {
	worker, err := s.GetWorker(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := flattenPatch(patch)

	if v, ok := stringField(fields, "name"); ok {
		worker.Name = v
	}
	if v, ok := stringField(fields, "email"); ok {
		worker.Email = NormalizeEmail(v)
	}
	if v, ok := stringField(fields, "phone"); ok {
		worker.Phone = v
	}
	if v, ok := stringField(fields, "role"); ok {
		role := domain.WorkerRole(v)
		if role != domain.WorkerRoleAdmin && role != domain.WorkerRoleStaff {
			return nil, apperrors.NewValidationError("role must be admin or staff", nil)
		}
		worker.Role = role
	}
	if v, ok := fields["active"].(bool); ok {
		worker.Active = v
	}
	if v, ok := stringField(fields, "password"); ok {
		if v == "" {
			return nil, apperrors.NewValidationError("password must not be empty", nil)
		}
		hash, err := auth.HashPassword(v, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		worker.PasswordHash = hash
	}

	if err := s.workers.Update(ctx, worker); err != nil {
		return nil, err
	}
	return worker, nil
}

// DeactivateWorker flips the active flag off, ending the account's ability
// to log in without destroying its history.
func (s *WorkerService) DeactivateWorker(ctx context.Context, id string) (*domain.Worker, error) {
	worker, err := s.GetWorker(ctx, id)
	if err != nil {
		return nil, err
	}
	worker.Active = false
	if err := s.workers.Update(ctx, worker); err != nil {
		return nil, err
	}
	return worker, nil
}

// DefaultPasswordForRole returns the bootstrap password for a role.
func DefaultPasswordForRole(role domain.WorkerRole) string {
	if role == domain.WorkerRoleAdmin {
		return DefaultAdminPassword
	}
	return DefaultStaffPassword
}

// flattenPatch merges a nested "set" clause into the top-level fields, with
// the nested values winning. Mobile clients send both shapes.
func flattenPatch(patch map[string]any) map[string]any {
	fields := make(map[string]any, len(patch))
	for k, v := range patch {
		if k == "set" {
			continue
		}
		fields[k] = v
	}
	if nested, ok := patch["set"].(map[string]any); ok {
		for k, v := range nested {
			fields[k] = v
		}
	}
	return fields
}

func stringField(fields map[string]any, key string) (string, bool) {
	v, ok := fields[key].(string)
	return v, ok
}
