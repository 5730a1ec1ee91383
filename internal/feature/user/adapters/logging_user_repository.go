package adapters

import (
	"context"
	"log/slog"

	"finance_tracker/internal/feature/user/domain/entity"
	"finance_tracker/internal/feature/user/usecase"
	"finance_tracker/internal/platform/instrument"
)

// loggingUserRepository はUserRepositoryの各呼び出しを実行ログで包むデコレーターです。
type loggingUserRepository struct {
	inner usecase.UserRepository
	log   *slog.Logger
}

var _ usecase.UserRepository = (*loggingUserRepository)(nil)

// NewLoggingUserRepository はinnerをログ出力付きで包みます。
func NewLoggingUserRepository(inner usecase.UserRepository, log *slog.Logger) *loggingUserRepository {
	return &loggingUserRepository{inner: inner, log: log}
}

func (r *loggingUserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return instrument.Call(ctx, r.log, "UserRepository.FindByID", []any{id}, func(ctx context.Context) (*entity.User, error) {
		return r.inner.FindByID(ctx, id)
	})
}

func (r *loggingUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return instrument.Call(ctx, r.log, "UserRepository.FindByEmail", []any{email}, func(ctx context.Context) (*entity.User, error) {
		return r.inner.FindByEmail(ctx, email)
	})
}

func (r *loggingUserRepository) FindAll(ctx context.Context) ([]entity.User, error) {
	return instrument.Call(ctx, r.log, "UserRepository.FindAll", nil, r.inner.FindAll)
}

func (r *loggingUserRepository) Save(ctx context.Context, u *entity.User) (int64, error) {
	return instrument.Call(ctx, r.log, "UserRepository.Save", []any{u}, func(ctx context.Context) (int64, error) {
		return r.inner.Save(ctx, u)
	})
}

func (r *loggingUserRepository) Update(ctx context.Context, u *entity.User) error {
	return instrument.Exec(ctx, r.log, "UserRepository.Update", []any{u}, func(ctx context.Context) error {
		return r.inner.Update(ctx, u)
	})
}

func (r *loggingUserRepository) DeleteByID(ctx context.Context, id int64) error {
	return instrument.Exec(ctx, r.log, "UserRepository.DeleteByID", []any{id}, func(ctx context.Context) error {
		return r.inner.DeleteByID(ctx, id)
	})
}
