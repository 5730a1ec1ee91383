// Package dto defines the request and response bodies of the goal HTTP transport.
package dto

import (
	"github.com/shopspring/decimal"

	"finance_tracker/internal/feature/goal/domain/entity"
)

// CreateGoalReq is the body of the create call.
type CreateGoalReq struct {
	UserID       int64           `json:"userId" binding:"required,gt=0"`
	Description  string          `json:"description" binding:"required"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
}

// UpdateGoalReq is the body of the update call. Omitted fields keep their value.
type UpdateGoalReq struct {
	UserID       *int64           `json:"userId" binding:"omitempty,gt=0"`
	Description  *string          `json:"description" binding:"omitempty,min=1"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
}

// GoalRes is the JSON form of a goal.
type GoalRes struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"userId"`
	Description  string          `json:"description"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
}

// FromGoal converts an entity to its response form.
func FromGoal(g *entity.Goal) GoalRes {
	return GoalRes{ID: g.ID, UserID: g.UserID, Description: g.Description, TargetAmount: g.TargetAmount}
}

// FromGoals converts a slice; the result is never nil.
func FromGoals(gs []entity.Goal) []GoalRes {
	out := make([]GoalRes, 0, len(gs))
	for i := range gs {
		out = append(out, FromGoal(&gs[i]))
	}
	return out
}
