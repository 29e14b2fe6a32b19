package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bizops-service/internal/api/dto"
	"github.com/spec-kit/bizops-service/internal/auth"
	"github.com/spec-kit/bizops-service/internal/domain"
	"github.com/spec-kit/bizops-service/internal/repository"
	"github.com/spec-kit/bizops-service/internal/service"
)

// TransactionsHandler exposes transaction endpoints.
type TransactionsHandler struct {
	transactions *service.TransactionService
}

// NewTransactionsHandler constructs handler.
func NewTransactionsHandler(transactionService *service.TransactionService) *TransactionsHandler {
	return &TransactionsHandler{transactions: transactionService}
}

// Record handles POST /api/transactions.
func (h *TransactionsHandler) Record(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.RecordTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	tx, err := h.transactions.RecordTransaction(c.Context(), identity, service.RecordTransactionInput{
		Type:        domain.TransactionType(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
		CustomerID:  req.CustomerID,
		OccurredAt:  req.OccurredAt,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTransactionResponse(tx)})
}

// List handles GET /api/transactions.
func (h *TransactionsHandler) List(c *fiber.Ctx) error {
	filter := repository.TransactionFilter{
		Limit:  parseIntQuery(c, "limit", 50),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if txType := c.Query("type"); txType != "" {
		t := domain.TransactionType(txType)
		filter.Type = &t
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		filter.CustomerID = &customerID
	}
	from, to, err := parseRangeQuery(c)
	if err != nil {
		return err
	}
	filter.From = from
	filter.To = to

	txs, err := h.transactions.ListTransactions(c.Context(), filter)
	if err != nil {
		return err
	}
	responses := make([]dto.TransactionResponse, 0, len(txs))
	for i := range txs {
		responses = append(responses, dto.NewTransactionResponse(&txs[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Get handles GET /api/transactions/:id.
func (h *TransactionsHandler) Get(c *fiber.Ctx) error {
	tx, err := h.transactions.GetTransaction(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTransactionResponse(tx)})
}

// Summary handles GET /api/transactions/summary. Without a range it covers
// the current UTC day; callers in another timezone pass from/to explicitly.
func (h *TransactionsHandler) Summary(c *fiber.Ctx) error {
	from, to, err := parseRangeQuery(c)
	if err != nil {
		return err
	}
	if from == nil {
		now := time.Now().UTC()
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		from = &dayStart
	}
	if to == nil {
		dayEnd := from.Add(24 * time.Hour)
		to = &dayEnd
	}

	summary, err := h.transactions.Summarize(c.Context(), *from, *to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TransactionSummaryResponse{
		From:        *from,
		To:          *to,
		Count:       summary.Count,
		SaleTotal:   summary.SaleTotal,
		RefundTotal: summary.RefundTotal,
		PayoutTotal: summary.PayoutTotal,
		Net:         summary.Net(),
	}})
}

func parseRangeQuery(c *fiber.Ctx) (from, to *time.Time, err error) {
	if raw := c.Query("from"); raw != "" {
		parsed, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			return nil, nil, fiber.NewError(http.StatusBadRequest, "invalid from timestamp")
		}
		from = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			return nil, nil, fiber.NewError(http.StatusBadRequest, "invalid to timestamp")
		}
		to = &parsed
	}
	return from, to, nil
}
