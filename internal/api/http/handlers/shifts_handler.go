package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bizops-service/internal/api/dto"
	"github.com/spec-kit/bizops-service/internal/repository"
	"github.com/spec-kit/bizops-service/internal/service"
)

// ShiftsHandler exposes clock-in/clock-out endpoints.
type ShiftsHandler struct {
	shifts *service.ShiftService
}

// NewShiftsHandler constructs handler.
func NewShiftsHandler(shiftService *service.ShiftService) *ShiftsHandler {
	return &ShiftsHandler{shifts: shiftService}
}

// Open handles POST /api/shifts.
func (h *ShiftsHandler) Open(c *fiber.Ctx) error {
	var req dto.OpenShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.WorkerID == "" {
		return fiber.NewError(http.StatusBadRequest, "worker_id required")
	}

	shift, err := h.shifts.OpenShift(c.Context(), req.WorkerID, req.Notes)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewShiftResponse(shift)})
}

// Close handles POST /api/shifts/:id/close.
func (h *ShiftsHandler) Close(c *fiber.Ctx) error {
	var req dto.CloseShiftRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid payload")
		}
	}

	shift, err := h.shifts.CloseShift(c.Context(), c.Params("id"), req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewShiftResponse(shift)})
}

// List handles GET /api/shifts.
func (h *ShiftsHandler) List(c *fiber.Ctx) error {
	filter := repository.ShiftFilter{
		OpenOnly: c.QueryBool("open"),
		Limit:    parseIntQuery(c, "limit", 50),
		Offset:   parseIntQuery(c, "offset", 0),
	}
	if workerID := c.Query("worker_id"); workerID != "" {
		filter.WorkerID = &workerID
	}
	from, to, err := parseRangeQuery(c)
	if err != nil {
		return err
	}
	filter.From = from
	filter.To = to

	shifts, err := h.shifts.ListShifts(c.Context(), filter)
	if err != nil {
		return err
	}
	responses := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		responses = append(responses, dto.NewShiftResponse(&shifts[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Get handles GET /api/shifts/:id.
func (h *ShiftsHandler) Get(c *fiber.Ctx) error {
	shift, err := h.shifts.GetShift(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewShiftResponse(shift)})
}
