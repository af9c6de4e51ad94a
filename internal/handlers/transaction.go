package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"crediwallet/internal/models"
	"crediwallet/internal/repositories"
	"crediwallet/internal/services/statement"
	"crediwallet/internal/services/transfer"
	"crediwallet/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// StatementNotifier announces generated statement files.
type StatementNotifier interface {
	StatementReady(ctx context.Context, user *models.User, from, to time.Time, filePath string)
}

type TransactionHandler struct {
	engine     transfer.Service
	statements statement.Service
	ledger     repositories.LedgerRepository
	notifier   StatementNotifier
}

func NewTransactionHandler(engine transfer.Service, statements statement.Service, ledger repositories.LedgerRepository, notifier StatementNotifier) *TransactionHandler {
	return &TransactionHandler{
		engine:     engine,
		statements: statements,
		ledger:     ledger,
		notifier:   notifier,
	}
}

// CreateTransaction dispatches a money movement to the engine based on
// the requested type.
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var input struct {
		Type          string          `json:"type"`
		Amount        decimal.Decimal `json:"amount"`
		RecipientID   uint            `json:"recipient_id"`
		AccountNumber string          `json:"account_number"`
		Email         string          `json:"email"`
		Description   string          `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	var (
		entry *models.LedgerEntry
		err   error
	)
	switch input.Type {
	case models.EntryTypeFund:
		entry, err = h.engine.Fund(c.UserContext(), claims.UserID, input.Amount)
	case models.EntryTypeWithdraw:
		entry, err = h.engine.Withdraw(c.UserContext(), claims.UserID, input.Amount)
	case models.EntryTypeTransfer:
		entry, err = h.engine.Transfer(c.UserContext(), transfer.Request{
			ActorID: claims.UserID,
			Amount:  input.Amount,
			Recipient: transfer.RecipientSelector{
				ID:            input.RecipientID,
				AccountNumber: input.AccountNumber,
				Email:         input.Email,
			},
			Description: input.Description,
		})
	default:
		return utils.BadRequest(c, "Invalid transaction type")
	}
	if err != nil {
		return h.respondEngineError(c, err)
	}

	return utils.Created(c, fiber.Map{
		"message":     "Transaction successful",
		"transaction": entry,
	})
}

// GetTransactions returns the caller's history, paginated and optionally
// filtered by date range, together with the range's metrics.
func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	p := utils.GetPagination(c, 1, 20)
	entries, total, err := h.ledger.ListPaginated(repositories.LedgerQuery{
		UserID: claims.UserID,
		Limit:  p.Limit,
		Offset: p.Offset,
		From:   from,
		To:     to,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidDateRange) {
			return utils.BadRequest(c, "Invalid date range")
		}
		log.Printf("list transactions for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "Error fetching transaction history")
	}
	p.SetTotal(total)

	return utils.Success(c, fiber.Map{
		"message":    "Transaction history retrieved successfully",
		"data":       entries,
		"pagination": p,
		"metrics":    statement.ComputeMetrics(entries),
	})
}

// GetTransaction returns a single entry owned by the caller.
func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return utils.BadRequest(c, "Invalid transaction id")
	}

	entry, err := h.ledger.GetByID(uint(id), claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrEntryNotFound) {
			return utils.NotFound(c, "Transaction not found")
		}
		log.Printf("fetch transaction %d: %v", id, err)
		return utils.InternalError(c, "Error fetching transaction")
	}

	return utils.Success(c, entry)
}

// GenerateStatement renders a statement file for the requested period
// and announces it to the notifier.
func (h *TransactionHandler) GenerateStatement(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	path, st, err := h.statements.GenerateFile(c.UserContext(), claims.UserID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, statement.ErrUserNotFound):
			return utils.NotFound(c, "User not found")
		case errors.Is(err, statement.ErrInvalidDateRange):
			return utils.BadRequest(c, "Invalid date range")
		default:
			log.Printf("generate statement for user %d: %v", claims.UserID, err)
			return utils.InternalError(c, "Error generating statement")
		}
	}

	if h.notifier != nil {
		go h.notifier.StatementReady(context.Background(), st.User, from, to, path)
	}

	return utils.Created(c, fiber.Map{
		"message": "Statement generated successfully",
		"file":    path,
		"metrics": st.Metrics,
	})
}

func (h *TransactionHandler) respondEngineError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, transfer.ErrUserNotFound):
		return utils.NotFound(c, "User not found")
	case errors.Is(err, transfer.ErrRecipientNotFound):
		return utils.NotFound(c, "Recipient not found")
	case errors.Is(err, transfer.ErrSelfTransfer):
		return utils.Conflict(c, "Cannot transfer to your own account")
	case errors.Is(err, transfer.ErrDuplicateTransaction):
		return utils.Conflict(c, err.Error())
	case errors.Is(err, transfer.ErrUserBlocked):
		return utils.Forbidden(c, "Account is blocked")
	case errors.Is(err, transfer.ErrInsufficientFunds):
		return utils.BadRequest(c, "Insufficient funds")
	case errors.Is(err, transfer.ErrInvalidRecipient), transfer.IsValidationError(err):
		return utils.BadRequest(c, err.Error())
	default:
		log.Printf("transaction failed: %v", err)
		return utils.InternalError(c, "Transaction failed")
	}
}

// parseDateRange reads optional from/to query params, accepting plain
// dates or RFC 3339 timestamps. The to date is pushed to end of day so a
// single-day range covers the whole day.
func parseDateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	var from, to time.Time

	if raw := c.Query("from"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return from, to, errors.New("invalid from date")
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return from, to, errors.New("invalid to date")
		}
		if len(raw) == len(dateLayout) {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		to = t
	}
	return from, to, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
