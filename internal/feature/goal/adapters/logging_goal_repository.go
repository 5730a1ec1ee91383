package adapters

import (
	"context"
	"log/slog"

	"finance_tracker/internal/feature/goal/domain/entity"
	"finance_tracker/internal/feature/goal/usecase"
	"finance_tracker/internal/platform/instrument"
)

type loggingGoalRepository struct {
	inner usecase.GoalRepository
	log   *slog.Logger
}

var _ usecase.GoalRepository = (*loggingGoalRepository)(nil)

// NewLoggingGoalRepository wraps inner with call logging.
func NewLoggingGoalRepository(inner usecase.GoalRepository, log *slog.Logger) *loggingGoalRepository {
	return &loggingGoalRepository{inner: inner, log: log}
}

func (r *loggingGoalRepository) FindByID(ctx context.Context, id int64) (*entity.Goal, error) {
	return instrument.Call(ctx, r.log, "GoalRepository.FindByID", []any{id}, func(ctx context.Context) (*entity.Goal, error) {
		return r.inner.FindByID(ctx, id)
	})
}

func (r *loggingGoalRepository) FindAll(ctx context.Context) ([]entity.Goal, error) {
	return instrument.Call(ctx, r.log, "GoalRepository.FindAll", nil, r.inner.FindAll)
}

func (r *loggingGoalRepository) FindAllByUserID(ctx context.Context, userID int64) ([]entity.Goal, error) {
	return instrument.Call(ctx, r.log, "GoalRepository.FindAllByUserID", []any{userID}, func(ctx context.Context) ([]entity.Goal, error) {
		return r.inner.FindAllByUserID(ctx, userID)
	})
}

func (r *loggingGoalRepository) Save(ctx context.Context, g *entity.Goal) (int64, error) {
	return instrument.Call(ctx, r.log, "GoalRepository.Save", []any{g}, func(ctx context.Context) (int64, error) {
		return r.inner.Save(ctx, g)
	})
}

func (r *loggingGoalRepository) Update(ctx context.Context, g *entity.Goal) error {
	return instrument.Exec(ctx, r.log, "GoalRepository.Update", []any{g}, func(ctx context.Context) error {
		return r.inner.Update(ctx, g)
	})
}

func (r *loggingGoalRepository) DeleteByID(ctx context.Context, id int64) error {
	return instrument.Exec(ctx, r.log, "GoalRepository.DeleteByID", []any{id}, func(ctx context.Context) error {
		return r.inner.DeleteByID(ctx, id)
	})
}
