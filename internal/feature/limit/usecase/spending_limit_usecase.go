// Package usecase implements the business logic for spending limits and the
// monthly limit check.
package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"finance_tracker/internal/feature/limit/domain/entity"
	"finance_tracker/internal/shared/apperr"
)

// SpendingLimitRepository abstracts spending limit storage.
type SpendingLimitRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.SpendingLimit, error)
	FindAllActiveByUserID(ctx context.Context, userID int64) ([]entity.SpendingLimit, error)
	Save(ctx context.Context, l *entity.SpendingLimit) (int64, error)
	Update(ctx context.Context, l *entity.SpendingLimit) error
	DeleteByID(ctx context.Context, id int64) error
}

// LimitInput holds every field of a spending limit.
type LimitInput struct {
	UserID int64
	Limit  decimal.Decimal
	Active bool
}

type spendingLimitUsecase struct {
	repo SpendingLimitRepository
}

// NewSpendingLimitUsecase creates a new spending limit usecase.
func NewSpendingLimitUsecase(repo SpendingLimitRepository) *spendingLimitUsecase {
	return &spendingLimitUsecase{repo: repo}
}

func (u *spendingLimitUsecase) GetByID(ctx context.Context, id int64) (*entity.SpendingLimit, error) {
	if err := apperr.RequirePositiveID("id", id); err != nil {
		return nil, err
	}
	return u.repo.FindByID(ctx, id)
}

// GetAllActiveByUserID lists the active limits of the user.
func (u *spendingLimitUsecase) GetAllActiveByUserID(ctx context.Context, userID int64) ([]entity.SpendingLimit, error) {
	if err := apperr.RequirePositiveID("userId", userID); err != nil {
		return nil, err
	}
	return u.repo.FindAllActiveByUserID(ctx, userID)
}

func (u *spendingLimitUsecase) Create(ctx context.Context, in LimitInput) (int64, error) {
	l := &entity.SpendingLimit{}
	if err := apply(l, in); err != nil {
		return 0, err
	}
	return u.repo.Save(ctx, l)
}

// Update loads limit id and replaces its fields.
func (u *spendingLimitUsecase) Update(ctx context.Context, id int64, in LimitInput) error {
	if err := apperr.RequirePositiveID("id", id); err != nil {
		return err
	}
	l, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := apply(l, in); err != nil {
		return err
	}
	return u.repo.Update(ctx, l)
}

func (u *spendingLimitUsecase) Delete(ctx context.Context, id int64) error {
	if err := apperr.RequirePositiveID("id", id); err != nil {
		return err
	}
	if _, err := u.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return u.repo.DeleteByID(ctx, id)
}

func apply(l *entity.SpendingLimit, in LimitInput) error {
	if err := apperr.RequirePositiveID("userId", in.UserID); err != nil {
		return err
	}
	if !in.Limit.IsPositive() {
		return apperr.InvalidArgument("limit must be positive, got %s", in.Limit)
	}
	l.UserID = in.UserID
	l.Limit = in.Limit
	l.Active = in.Active
	return nil
}
