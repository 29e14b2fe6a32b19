package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bizops-service/internal/api/dto"
	"github.com/spec-kit/bizops-service/internal/domain"
	"github.com/spec-kit/bizops-service/internal/repository"
	"github.com/spec-kit/bizops-service/internal/service"
)

// WorkersHandler exposes employee management endpoints.
type WorkersHandler struct {
	workers *service.WorkerService
}

// NewWorkersHandler constructs handler.
func NewWorkersHandler(workerService *service.WorkerService) *WorkersHandler {
	return &WorkersHandler{workers: workerService}
}

// Create handles POST /api/workers.
func (h *WorkersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Role == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, role required")
	}

	worker, err := h.workers.CreateWorker(c.Context(), service.CreateWorkerInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     domain.WorkerRole(req.Role),
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewWorkerResponse(worker)})
}

// List handles GET /api/workers.
func (h *WorkersHandler) List(c *fiber.Ctx) error {
	filter := repository.WorkerFilter{
		Limit:  parseIntQuery(c, "limit", 50),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if role := c.Query("role"); role != "" {
		r := domain.WorkerRole(role)
		filter.Role = &r
	}
	if active := c.Query("active"); active != "" {
		parsed, err := strconv.ParseBool(active)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid active filter")
		}
		filter.Active = &parsed
	}

	workers, err := h.workers.ListWorkers(c.Context(), filter)
	if err != nil {
		return err
	}
	responses := make([]dto.WorkerResponse, 0, len(workers))
	for i := range workers {
		responses = append(responses, dto.NewWorkerResponse(&workers[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Get handles GET /api/workers/:id.
func (h *WorkersHandler) Get(c *fiber.Ctx) error {
	worker, err := h.workers.GetWorker(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWorkerResponse(worker)})
}

// Update handles PUT /api/workers/:id.
func (h *WorkersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Role == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, role required")
	}

	worker, err := h.workers.UpdateWorker(c.Context(), c.Params("id"), service.UpdateWorkerInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     domain.WorkerRole(req.Role),
		Active:   req.Active,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWorkerResponse(worker)})
}

// Patch handles PATCH /api/workers/:id. The body is a free-form partial
// document; a password field is hashed before it is stored, wherever it
// appears.
func (h *WorkersHandler) Patch(c *fiber.Ctx) error {
	var patch map[string]any
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if len(patch) == 0 {
		return fiber.NewError(http.StatusBadRequest, "empty patch")
	}

	worker, err := h.workers.PatchWorker(c.Context(), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWorkerResponse(worker)})
}

// Deactivate handles DELETE /api/workers/:id.
func (h *WorkersHandler) Deactivate(c *fiber.Ctx) error {
	worker, err := h.workers.DeactivateWorker(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewWorkerResponse(worker)})
}

func parseIntQuery(c *fiber.Ctx, key string, fallback int) int {
	val := c.Query(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
