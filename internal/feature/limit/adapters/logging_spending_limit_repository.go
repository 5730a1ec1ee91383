package adapters

import (
	"context"
	"log/slog"

	"finance_tracker/internal/feature/limit/domain/entity"
	"finance_tracker/internal/feature/limit/usecase"
	"finance_tracker/internal/platform/instrument"
)

type loggingSpendingLimitRepository struct {
	inner usecase.SpendingLimitRepository
	log   *slog.Logger
}

var _ usecase.SpendingLimitRepository = (*loggingSpendingLimitRepository)(nil)

// NewLoggingSpendingLimitRepository wraps inner with call logging.
func NewLoggingSpendingLimitRepository(inner usecase.SpendingLimitRepository, log *slog.Logger) *loggingSpendingLimitRepository {
	return &loggingSpendingLimitRepository{inner: inner, log: log}
}

func (r *loggingSpendingLimitRepository) FindByID(ctx context.Context, id int64) (*entity.SpendingLimit, error) {
	return instrument.Call(ctx, r.log, "SpendingLimitRepository.FindByID", []any{id}, func(ctx context.Context) (*entity.SpendingLimit, error) {
		return r.inner.FindByID(ctx, id)
	})
}

func (r *loggingSpendingLimitRepository) FindAllActiveByUserID(ctx context.Context, userID int64) ([]entity.SpendingLimit, error) {
	return instrument.Call(ctx, r.log, "SpendingLimitRepository.FindAllActiveByUserID", []any{userID}, func(ctx context.Context) ([]entity.SpendingLimit, error) {
		return r.inner.FindAllActiveByUserID(ctx, userID)
	})
}

func (r *loggingSpendingLimitRepository) Save(ctx context.Context, l *entity.SpendingLimit) (int64, error) {
	return instrument.Call(ctx, r.log, "SpendingLimitRepository.Save", []any{l}, func(ctx context.Context) (int64, error) {
		return r.inner.Save(ctx, l)
	})
}

func (r *loggingSpendingLimitRepository) Update(ctx context.Context, l *entity.SpendingLimit) error {
	return instrument.Exec(ctx, r.log, "SpendingLimitRepository.Update", []any{l}, func(ctx context.Context) error {
		return r.inner.Update(ctx, l)
	})
}

func (r *loggingSpendingLimitRepository) DeleteByID(ctx context.Context, id int64) error {
	return instrument.Exec(ctx, r.log, "SpendingLimitRepository.DeleteByID", []any{id}, func(ctx context.Context) error {
		return r.inner.DeleteByID(ctx, id)
	})
}
