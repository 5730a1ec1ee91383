// Package usecase implements the business logic for the goal feature.
package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"finance_tracker/internal/feature/goal/domain/entity"
	"finance_tracker/internal/shared/apperr"
)

// GoalRepository abstracts goal storage.
type GoalRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Goal, error)
	FindAll(ctx context.Context) ([]entity.Goal, error)
	FindAllByUserID(ctx context.Context, userID int64) ([]entity.Goal, error)
	Save(ctx context.Context, g *entity.Goal) (int64, error)
	Update(ctx context.Context, g *entity.Goal) error
	DeleteByID(ctx context.Context, id int64) error
}

// CreateInput holds the fields of a new goal.
type CreateInput struct {
	UserID       int64
	Description  string
	TargetAmount decimal.Decimal
}

// UpdateInput changes the non-nil fields of goal ID.
type UpdateInput struct {
	ID           int64
	UserID       *int64
	Description  *string
	TargetAmount *decimal.Decimal
}

type goalUsecase struct {
	repo GoalRepository
}

// NewGoalUsecase creates a new goal usecase.
func NewGoalUsecase(repo GoalRepository) *goalUsecase {
	return &goalUsecase{repo: repo}
}

func (u *goalUsecase) GetByID(ctx context.Context, id int64) (*entity.Goal, error) {
	if err := apperr.RequirePositiveID("id", id); err != nil {
		return nil, err
	}
	return u.repo.FindByID(ctx, id)
}

func (u *goalUsecase) GetAll(ctx context.Context) ([]entity.Goal, error) {
	return u.repo.FindAll(ctx)
}

func (u *goalUsecase) GetAllByUserID(ctx context.Context, userID int64) ([]entity.Goal, error) {
	if err := apperr.RequirePositiveID("userId", userID); err != nil {
		return nil, err
	}
	return u.repo.FindAllByUserID(ctx, userID)
}

func (u *goalUsecase) Create(ctx context.Context, in CreateInput) (int64, error) {
	g := &entity.Goal{UserID: in.UserID, Description: strings.TrimSpace(in.Description), TargetAmount: in.TargetAmount}
	if err := validate(g); err != nil {
		return 0, err
	}
	return u.repo.Save(ctx, g)
}

// Update loads the goal and keeps every field the input leaves nil.
func (u *goalUsecase) Update(ctx context.Context, in UpdateInput) error {
	if err := apperr.RequirePositiveID("id", in.ID); err != nil {
		return err
	}
	g, err := u.repo.FindByID(ctx, in.ID)
	if err != nil {
		return err
	}
	if in.UserID != nil {
		g.UserID = *in.UserID
	}
	if in.Description != nil {
		g.Description = strings.TrimSpace(*in.Description)
	}
	if in.TargetAmount != nil {
		g.TargetAmount = *in.TargetAmount
	}
	if err := validate(g); err != nil {
		return err
	}
	return u.repo.Update(ctx, g)
}

func (u *goalUsecase) Delete(ctx context.Context, id int64) error {
	if err := apperr.RequirePositiveID("id", id); err != nil {
		return err
	}
	if _, err := u.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return u.repo.DeleteByID(ctx, id)
}

func validate(g *entity.Goal) error {
	if err := apperr.RequirePositiveID("userId", g.UserID); err != nil {
		return err
	}
	if g.Description == "" {
		return apperr.InvalidArgument("description must not be blank")
	}
	if !g.TargetAmount.IsPositive() {
		return apperr.InvalidArgument("targetAmount must be positive, got %s", g.TargetAmount)
	}
	return nil
}
