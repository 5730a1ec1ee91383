// Package dto defines the request and response bodies of the transaction HTTP transport.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"finance_tracker/internal/feature/transaction/domain/entity"
)

// TransactionReq is the body of create and update calls.
// Amount accepts a JSON number or a quoted decimal string.
type TransactionReq struct {
	UserID      int64           `json:"userId" binding:"required,gt=0"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category" binding:"required,oneof=PRODUCTS HOUSE TRANSPORT SUPERMARKETS INCOME OTHER_EXPENSES"`
	Description string          `json:"description" binding:"required"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	Income      bool            `json:"income"`
}

// TransactionRes is the JSON form of a transaction.
type TransactionRes struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Income      bool            `json:"income"`
}

// AmountRes carries one statistic of a user.
type AmountRes struct {
	UserID int64           `json:"userId"`
	Amount decimal.Decimal `json:"amount"`
}

// FromTransaction converts an entity to its response form.
func FromTransaction(t *entity.Transaction) TransactionRes {
	return TransactionRes{
		ID:          t.ID,
		UserID:      t.UserID,
		Amount:      t.Amount,
		Category:    string(t.Category),
		Description: t.Description,
		Date:        t.Date.Format(time.DateOnly),
		Income:      t.Income,
	}
}

// FromTransactions converts a slice; the result is never nil.
func FromTransactions(ts []entity.Transaction) []TransactionRes {
	out := make([]TransactionRes, 0, len(ts))
	for i := range ts {
		out = append(out, FromTransaction(&ts[i]))
	}
	return out
}
