package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/finance-tracker/internal/api/dto"
	"github.com/spec-kit/finance-tracker/internal/domain"
	"github.com/spec-kit/finance-tracker/internal/service"
	apperrors "github.com/spec-kit/finance-tracker/pkg/util"
)

const dateLayout = "2006-01-02"

// TransactionsHandler exposes transaction endpoints.
type TransactionsHandler struct {
	transactions *service.TransactionService
}

// NewTransactionsHandler constructs handler.
func NewTransactionsHandler(transactionService *service.TransactionService) *TransactionsHandler {
	return &TransactionsHandler{transactions: transactionService}
}

// Create handles POST /api/transactions.
func (h *TransactionsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID <= 0 || req.CategoryID <= 0 || req.Amount <= 0 {
		return apperrors.NewValidationError("user_id, category_id and a positive amount required", nil)
	}

	txType, err := domain.ParseTransactionType(req.Type)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return apperrors.NewValidationError("invalid date: expected YYYY-MM-DD", nil)
	}

	tx, err := h.transactions.Create(c.Context(), service.TransactionCreateInput{
		UserID:      req.UserID,
		CategoryID:  req.CategoryID,
		Type:        txType,
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTransactionResponse(tx)})
}

// Get handles GET /api/transactions/:id.
func (h *TransactionsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	tx, err := h.transactions.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTransactionResponse(tx)})
}

// ListByUser handles GET /api/transactions/user/:userId.
func (h *TransactionsHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}
	txs, err := h.transactions.ListByUser(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTransactionResponses(txs)})
}

// ListByUserAndRange handles GET /api/transactions/user/:userId/range?start&end.
func (h *TransactionsHandler) ListByUserAndRange(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}
	start, end, err := parseDateWindow(c)
	if err != nil {
		return err
	}

	txs, err := h.transactions.ListByUserAndDateRange(c.Context(), userID, start, end)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTransactionResponses(txs)})
}

// History handles GET /api/transactions/user/:userId/history. The optional
// type filter is validated before any repository work: an unknown name is a
// client error, never silently ignored.
func (h *TransactionsHandler) History(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}
	start, end, err := parseDateWindow(c)
	if err != nil {
		return err
	}

	filter := service.HistoryFilter{
		Page: c.QueryInt("page", 0),
		Size: c.QueryInt("size", 0),
	}
	if typeStr := c.Query("type"); typeStr != "" {
		txType, err := domain.ParseTransactionType(typeStr)
		if err != nil {
			return apperrors.NewValidationError(err.Error(), nil)
		}
		filter.Type = &txType
	}
	if categoryStr := c.Query("categoryId"); categoryStr != "" {
		categoryID, err := strconv.ParseInt(categoryStr, 10, 64)
		if err != nil {
			return apperrors.NewValidationError("invalid categoryId", nil)
		}
		filter.CategoryID = &categoryID
	}

	page, err := h.transactions.History(c.Context(), userID, start, end, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewHistoryResponse(page)})
}

// Update handles PUT /api/transactions/:id.
func (h *TransactionsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.TransactionUpdateInput{
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.Type != nil {
		txType, err := domain.ParseTransactionType(*req.Type)
		if err != nil {
			return apperrors.NewValidationError(err.Error(), nil)
		}
		input.Type = &txType
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return apperrors.NewValidationError("invalid date: expected YYYY-MM-DD", nil)
		}
		input.Date = &date
	}

	tx, err := h.transactions.Update(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTransactionResponse(tx)})
}

// Deactivate handles DELETE /api/transactions/:id.
func (h *TransactionsHandler) Deactivate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.transactions.Deactivate(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseDateWindow(c *fiber.Ctx) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, c.Query("start"))
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("start required as YYYY-MM-DD", nil)
	}
	end, err := time.Parse(dateLayout, c.Query("end"))
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("end required as YYYY-MM-DD", nil)
	}
	return start, end, nil
}
