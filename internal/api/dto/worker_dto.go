package dto

import (
	"time"

	"github.com/spec-kit/bizops-service/internal/domain"
)

// CreateWorkerRequest payload. Password is optional; when omitted the
// role-dependent bootstrap password is assigned.
type CreateWorkerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// UpdateWorkerRequest payload for full updates.
type UpdateWorkerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
	Password string `json:"password"`
}

// WorkerResponse is the public view of a worker. The credential never
// appears here.
type WorkerResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone,omitempty"`
	Role      domain.WorkerRole `json:"role"`
	Active    bool              `json:"active"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewWorkerResponse maps the domain model.
func NewWorkerResponse(worker *domain.Worker) WorkerResponse {
	return WorkerResponse{
		ID:        worker.ID,
		Name:      worker.Name,
		Email:     worker.Email,
		Phone:     worker.Phone,
		Role:      worker.Role,
		Active:    worker.Active,
		CreatedAt: worker.CreatedAt,
		UpdatedAt: worker.UpdatedAt,
	}
}
