package adapters

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"finance_tracker/internal/feature/transaction/domain/entity"
	"finance_tracker/internal/feature/transaction/usecase"
	"finance_tracker/internal/platform/instrument"
)

// loggingTransactionRepository wraps every repository call in an execution log.
type loggingTransactionRepository struct {
	inner usecase.TransactionRepository
	log   *slog.Logger
}

var _ usecase.TransactionRepository = (*loggingTransactionRepository)(nil)

// NewLoggingTransactionRepository wraps inner with call logging.
func NewLoggingTransactionRepository(inner usecase.TransactionRepository, log *slog.Logger) *loggingTransactionRepository {
	return &loggingTransactionRepository{inner: inner, log: log}
}

func (r *loggingTransactionRepository) FindByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	return instrument.Call(ctx, r.log, "TransactionRepository.FindByID", []any{id}, func(ctx context.Context) (*entity.Transaction, error) {
		return r.inner.FindByID(ctx, id)
	})
}

func (r *loggingTransactionRepository) FindAll(ctx context.Context) ([]entity.Transaction, error) {
	return instrument.Call(ctx, r.log, "TransactionRepository.FindAll", nil, r.inner.FindAll)
}

func (r *loggingTransactionRepository) FindAllByUserID(ctx context.Context, userID int64) ([]entity.Transaction, error) {
	return instrument.Call(ctx, r.log, "TransactionRepository.FindAllByUserID", []any{userID}, func(ctx context.Context) ([]entity.Transaction, error) {
		return r.inner.FindAllByUserID(ctx, userID)
	})
}

func (r *loggingTransactionRepository) FindAllByUserIDAndDate(ctx context.Context, userID int64, date time.Time) ([]entity.Transaction, error) {
	return instrument.Call(ctx, r.log, "TransactionRepository.FindAllByUserIDAndDate", []any{userID, date}, func(ctx context.Context) ([]entity.Transaction, error) {
		return r.inner.FindAllByUserIDAndDate(ctx, userID, date)
	})
}

func (r *loggingTransactionRepository) FindAllByUserIDAndCategory(ctx context.Context, userID int64, category entity.Category) ([]entity.Transaction, error) {
	return instrument.Call(ctx, r.log, "TransactionRepository.FindAllByUserIDAndCategory", []any{userID, category}, func(ctx context.Context) ([]entity.Transaction, error) {
		return r.inner.FindAllByUserIDAndCategory(ctx, userID, category)
	})
}

func (r *loggingTransactionRepository) FindAllByUserIDAndIncome(ctx context.Context, userID int64, income bool) ([]entity.Transaction, error) {
	return instrument.Call(ctx, r.log, "TransactionRepository.FindAllByUserIDAndIncome", []any{userID, income}, func(ctx context.Context) ([]entity.Transaction, error) {
		return r.inner.FindAllByUserIDAndIncome(ctx, userID, income)
	})
}

func (r *loggingTransactionRepository) Save(ctx context.Context, t *entity.Transaction) (int64, error) {
	return instrument.Call(ctx, r.log, "TransactionRepository.Save", []any{t}, func(ctx context.Context) (int64, error) {
		return r.inner.Save(ctx, t)
	})
}

func (r *loggingTransactionRepository) Update(ctx context.Context, t *entity.Transaction) error {
	return instrument.Exec(ctx, r.log, "TransactionRepository.Update", []any{t}, func(ctx context.Context) error {
		return r.inner.Update(ctx, t)
	})
}

func (r *loggingTransactionRepository) DeleteByID(ctx context.Context, id int64) error {
	return instrument.Exec(ctx, r.log, "TransactionRepository.DeleteByID", []any{id}, func(ctx context.Context) error {
		return r.inner.DeleteByID(ctx, id)
	})
}

func (r *loggingTransactionRepository) GetConsumptionByUserID(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return instrument.Call(ctx, r.log, "TransactionRepository.GetConsumptionByUserID", []any{userID}, func(ctx context.Context) (decimal.Decimal, error) {
		return r.inner.GetConsumptionByUserID(ctx, userID)
	})
}

func (r *loggingTransactionRepository) GetIncomeByUserID(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return instrument.Call(ctx, r.log, "TransactionRepository.GetIncomeByUserID", []any{userID}, func(ctx context.Context) (decimal.Decimal, error) {
		return r.inner.GetIncomeByUserID(ctx, userID)
	})
}

func (r *loggingTransactionRepository) GetConsumptionByUserIDForPeriod(ctx context.Context, userID int64, start, end time.Time) (decimal.Decimal, error) {
	return instrument.Call(ctx, r.log, "TransactionRepository.GetConsumptionByUserIDForPeriod", []any{userID, start, end}, func(ctx context.Context) (decimal.Decimal, error) {
		return r.inner.GetConsumptionByUserIDForPeriod(ctx, userID, start, end)
	})
}

func (r *loggingTransactionRepository) GetIncomeByUserIDForPeriod(ctx context.Context, userID int64, start, end time.Time) (decimal.Decimal, error) {
	return instrument.Call(ctx, r.log, "TransactionRepository.GetIncomeByUserIDForPeriod", []any{userID, start, end}, func(ctx context.Context) (decimal.Decimal, error) {
		return r.inner.GetIncomeByUserIDForPeriod(ctx, userID, start, end)
	})
}

func (r *loggingTransactionRepository) GetConsumptionByUserIDForCurrentMonth(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return instrument.Call(ctx, r.log, "TransactionRepository.GetConsumptionByUserIDForCurrentMonth", []any{userID}, func(ctx context.Context) (decimal.Decimal, error) {
		return r.inner.GetConsumptionByUserIDForCurrentMonth(ctx, userID)
	})
}

func (r *loggingTransactionRepository) GetConsumptionByUserIDAndCategory(ctx context.Context, userID int64, category entity.Category) (decimal.Decimal, error) {
	return instrument.Call(ctx, r.log, "TransactionRepository.GetConsumptionByUserIDAndCategory", []any{userID, category}, func(ctx context.Context) (decimal.Decimal, error) {
		return r.inner.GetConsumptionByUserIDAndCategory(ctx, userID, category)
	})
}

func (r *loggingTransactionRepository) GetBalanceByUserID(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return instrument.Call(ctx, r.log, "TransactionRepository.GetBalanceByUserID", []any{userID}, func(ctx context.Context) (decimal.Decimal, error) {
		return r.inner.GetBalanceByUserID(ctx, userID)
	})
}
