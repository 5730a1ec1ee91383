// Package handler provides the HTTP handlers of the transaction feature.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finance_tracker/internal/feature/transaction/domain/entity"
	"finance_tracker/internal/feature/transaction/transport/http/dto"
	"finance_tracker/internal/feature/transaction/usecase"
	"finance_tracker/internal/platform/http/respond"
	"finance_tracker/internal/shared/apperr"
)

// TransactionUsecase defines the transaction operations used by the handlers.
type TransactionUsecase interface {
	GetByID(ctx context.Context, id int64) (*entity.Transaction, error)
	GetAll(ctx context.Context) ([]entity.Transaction, error)
	GetAllByUserID(ctx context.Context, userID int64) ([]entity.Transaction, error)
	GetAllByUserIDAndDate(ctx context.Context, userID int64, date time.Time) ([]entity.Transaction, error)
	GetAllByUserIDAndCategory(ctx context.Context, userID int64, category entity.Category) ([]entity.Transaction, error)
	GetAllByUserIDAndIncome(ctx context.Context, userID int64, income bool) ([]entity.Transaction, error)
	Create(ctx context.Context, in usecase.CreateInput) (int64, error)
	Update(ctx context.Context, in usecase.UpdateInput) error
	Delete(ctx context.Context, id int64) error
}

// TransactionHandler serves /api/transactions.
type TransactionHandler struct {
	txs TransactionUsecase
}

// NewTransactionHandler creates a TransactionHandler.
func NewTransactionHandler(txs TransactionUsecase) *TransactionHandler {
	return &TransactionHandler{txs: txs}
}

func (h *TransactionHandler) GetAll(c *gin.Context) {
	ts, err := h.txs.GetAll(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTransactions(ts))
}

func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := respond.PathID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	t, err := h.txs.GetByID(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTransaction(t))
}

// GetByUser lists the transactions of the user in the id path parameter.
// At most one of the date, category or income query parameters narrows the list;
// they are checked in that order.
func (h *TransactionHandler) GetByUser(c *gin.Context) {
	userID, err := respond.PathID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	ctx := c.Request.Context()

	var ts []entity.Transaction
	switch {
	case c.Query("date") != "":
		d, perr := parseDate("date", c.Query("date"))
		if perr != nil {
			respond.Error(c, perr)
			return
		}
		ts, err = h.txs.GetAllByUserIDAndDate(ctx, userID, d)
	case c.Query("category") != "":
		cat, perr := entity.ParseCategory(c.Query("category"))
		if perr != nil {
			respond.BadRequest(c, perr)
			return
		}
		ts, err = h.txs.GetAllByUserIDAndCategory(ctx, userID, cat)
	case c.Query("income") != "":
		income, perr := strconv.ParseBool(c.Query("income"))
		if perr != nil {
			respond.Error(c, apperr.InvalidArgument("income must be true or false"))
			return
		}
		ts, err = h.txs.GetAllByUserIDAndIncome(ctx, userID, income)
	default:
		ts, err = h.txs.GetAllByUserID(ctx, userID)
	}
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTransactions(ts))
}

// Create stores a new transaction and answers 201 with its id.
func (h *TransactionHandler) Create(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}
	id, err := h.txs.Create(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, id)
}

func (h *TransactionHandler) Update(c *gin.Context) {
	id, err := respond.PathID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	in, ok := bindInput(c)
	if !ok {
		return
	}
	if err := h.txs.Update(c.Request.Context(), usecase.UpdateInput{ID: id, CreateInput: in}); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, respond.MessageResponse{Message: "Transaction updated successfully"})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	id, err := respond.PathID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	if err := h.txs.Delete(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindInput(c *gin.Context) (usecase.CreateInput, bool) {
	var req dto.TransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return usecase.CreateInput{}, false
	}
	d, err := parseDate("date", req.Date)
	if err != nil {
		respond.Error(c, err)
		return usecase.CreateInput{}, false
	}
	return usecase.CreateInput{
		UserID:      req.UserID,
		Amount:      req.Amount,
		Category:    entity.Category(req.Category),
		Description: req.Description,
		Date:        d,
		Income:      req.Income,
	}, true
}

func parseDate(name, s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, apperr.InvalidArgument("%s must be formatted as YYYY-MM-DD", name)
	}
	return d, nil
}

// respondAmount writes one user statistic.
func respondAmount(c *gin.Context, userID int64, amount decimal.Decimal, err error) {
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AmountRes{UserID: userID, Amount: amount})
}
