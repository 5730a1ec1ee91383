// Package usecase implements the business logic for the transaction feature.
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finance_tracker/internal/feature/transaction/domain/entity"
	"finance_tracker/internal/shared/apperr"
)

// TransactionRepository abstracts transaction storage and the aggregation queries over it.
// Following Go convention, the interface is defined by the consumer (usecase).
type TransactionRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Transaction, error)
	FindAll(ctx context.Context) ([]entity.Transaction, error)
	FindAllByUserID(ctx context.Context, userID int64) ([]entity.Transaction, error)
	FindAllByUserIDAndDate(ctx context.Context, userID int64, date time.Time) ([]entity.Transaction, error)
	FindAllByUserIDAndCategory(ctx context.Context, userID int64, category entity.Category) ([]entity.Transaction, error)
	FindAllByUserIDAndIncome(ctx context.Context, userID int64, income bool) ([]entity.Transaction, error)

	// Save inserts t and returns the store-generated ID.
	Save(ctx context.Context, t *entity.Transaction) (int64, error)
	Update(ctx context.Context, t *entity.Transaction) error
	DeleteByID(ctx context.Context, id int64) error

	GetConsumptionByUserID(ctx context.Context, userID int64) (decimal.Decimal, error)
	GetIncomeByUserID(ctx context.Context, userID int64) (decimal.Decimal, error)
	GetConsumptionByUserIDForPeriod(ctx context.Context, userID int64, start, end time.Time) (decimal.Decimal, error)
	GetIncomeByUserIDForPeriod(ctx context.Context, userID int64, start, end time.Time) (decimal.Decimal, error)
	GetConsumptionByUserIDForCurrentMonth(ctx context.Context, userID int64) (decimal.Decimal, error)
	GetConsumptionByUserIDAndCategory(ctx context.Context, userID int64, category entity.Category) (decimal.Decimal, error)
	GetBalanceByUserID(ctx context.Context, userID int64) (decimal.Decimal, error)
}

// CreateInput holds the fields of a new transaction.
type CreateInput struct {
	UserID      int64
	Amount      decimal.Decimal
	Category    entity.Category
	Description string
	Date        time.Time
	Income      bool
}

// UpdateInput holds the replacement fields of an existing transaction.
type UpdateInput struct {
	ID int64
	CreateInput
}

type transactionUsecase struct {
	repo TransactionRepository
}

// NewTransactionUsecase creates a new transaction usecase.
func NewTransactionUsecase(repo TransactionRepository) *transactionUsecase {
	return &transactionUsecase{repo: repo}
}

func (u *transactionUsecase) GetByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	if err := apperr.RequirePositiveID("id", id); err != nil {
		return nil, err
	}
	return u.repo.FindByID(ctx, id)
}

func (u *transactionUsecase) GetAll(ctx context.Context) ([]entity.Transaction, error) {
	return u.repo.FindAll(ctx)
}

func (u *transactionUsecase) GetAllByUserID(ctx context.Context, userID int64) ([]entity.Transaction, error) {
	if err := apperr.RequirePositiveID("userId", userID); err != nil {
		return nil, err
	}
	return u.repo.FindAllByUserID(ctx, userID)
}

func (u *transactionUsecase) GetAllByUserIDAndDate(ctx context.Context, userID int64, date time.Time) ([]entity.Transaction, error) {
	if err := apperr.RequirePositiveID("userId", userID); err != nil {
		return nil, err
	}
	return u.repo.FindAllByUserIDAndDate(ctx, userID, entity.Day(date))
}

func (u *transactionUsecase) GetAllByUserIDAndCategory(ctx context.Context, userID int64, category entity.Category) ([]entity.Transaction, error) {
	if err := apperr.RequirePositiveID("userId", userID); err != nil {
		return nil, err
	}
	return u.repo.FindAllByUserIDAndCategory(ctx, userID, category)
}

func (u *transactionUsecase) GetAllByUserIDAndIncome(ctx context.Context, userID int64, income bool) ([]entity.Transaction, error) {
	if err := apperr.RequirePositiveID("userId", userID); err != nil {
		return nil, err
	}
	return u.repo.FindAllByUserIDAndIncome(ctx, userID, income)
}

// Create validates in and stores it as a new transaction.
func (u *transactionUsecase) Create(ctx context.Context, in CreateInput) (int64, error) {
	t := &entity.Transaction{}
	if err := apply(t, in); err != nil {
		return 0, err
	}
	return u.repo.Save(ctx, t)
}

// Update loads the transaction, replaces its fields and stores it.
func (u *transactionUsecase) Update(ctx context.Context, in UpdateInput) error {
	if err := apperr.RequirePositiveID("id", in.ID); err != nil {
		return err
	}
	t, err := u.repo.FindByID(ctx, in.ID)
	if err != nil {
		return err
	}
	if err := apply(t, in.CreateInput); err != nil {
		return err
	}
	return u.repo.Update(ctx, t)
}

func (u *transactionUsecase) Delete(ctx context.Context, id int64) error {
	if err := apperr.RequirePositiveID("id", id); err != nil {
		return err
	}
	if _, err := u.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return u.repo.DeleteByID(ctx, id)
}

func (u *transactionUsecase) Consumption(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return u.aggregate(userID, func() (decimal.Decimal, error) { return u.repo.GetConsumptionByUserID(ctx, userID) })
}

func (u *transactionUsecase) Income(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return u.aggregate(userID, func() (decimal.Decimal, error) { return u.repo.GetIncomeByUserID(ctx, userID) })
}

func (u *transactionUsecase) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return u.aggregate(userID, func() (decimal.Decimal, error) { return u.repo.GetBalanceByUserID(ctx, userID) })
}

func (u *transactionUsecase) ConsumptionForCurrentMonth(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return u.aggregate(userID, func() (decimal.Decimal, error) {
		return u.repo.GetConsumptionByUserIDForCurrentMonth(ctx, userID)
	})
}

func (u *transactionUsecase) ConsumptionForPeriod(ctx context.Context, userID int64, start, end time.Time) (decimal.Decimal, error) {
	return u.aggregate(userID, func() (decimal.Decimal, error) {
		return u.repo.GetConsumptionByUserIDForPeriod(ctx, userID, start, end)
	})
}

func (u *transactionUsecase) IncomeForPeriod(ctx context.Context, userID int64, start, end time.Time) (decimal.Decimal, error) {
	return u.aggregate(userID, func() (decimal.Decimal, error) {
		return u.repo.GetIncomeByUserIDForPeriod(ctx, userID, start, end)
	})
}

func (u *transactionUsecase) ConsumptionByCategory(ctx context.Context, userID int64, category entity.Category) (decimal.Decimal, error) {
	return u.aggregate(userID, func() (decimal.Decimal, error) {
		return u.repo.GetConsumptionByUserIDAndCategory(ctx, userID, category)
	})
}

func (u *transactionUsecase) aggregate(userID int64, fn func() (decimal.Decimal, error)) (decimal.Decimal, error) {
	if err := apperr.RequirePositiveID("userId", userID); err != nil {
		return decimal.Zero, err
	}
	return fn()
}

// apply validates in and copies it onto t.
func apply(t *entity.Transaction, in CreateInput) error {
	if err := apperr.RequirePositiveID("userId", in.UserID); err != nil {
		return err
	}
	if !in.Amount.IsPositive() {
		return apperr.InvalidArgument("amount must be positive, got %s", in.Amount)
	}
	if _, err := entity.ParseCategory(string(in.Category)); err != nil {
		return apperr.InvalidArgument("%s", err.Error())
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return apperr.InvalidArgument("description must not be blank")
	}
	if in.Date.IsZero() {
		return apperr.InvalidArgument("date is required")
	}

	t.UserID = in.UserID
	t.Amount = in.Amount
	t.Category = in.Category
	t.Description = desc
	t.Date = entity.Day(in.Date)
	t.Income = in.Income
	return nil
}
