// Package dto defines the request and response bodies of the spending limit HTTP transport.
package dto

import (
	"github.com/shopspring/decimal"

	"finance_tracker/internal/feature/limit/domain/entity"
	"finance_tracker/internal/feature/limit/usecase"
)

// SpendingLimitReq is the body of create and update calls.
type SpendingLimitReq struct {
	UserID int64           `json:"userId" binding:"required,gt=0"`
	Limit  decimal.Decimal `json:"limit"`
	Active bool            `json:"active"`
}

// SpendingLimitRes is the JSON form of a spending limit.
type SpendingLimitRes struct {
	ID     int64           `json:"id"`
	UserID int64           `json:"userId"`
	Limit  decimal.Decimal `json:"limit"`
	Active bool            `json:"active"`
}

// LimitCheckRes reports the limits exceeded by the current month's consumption.
type LimitCheckRes struct {
	UserID      int64              `json:"userId"`
	Consumption decimal.Decimal    `json:"consumption"`
	Exceeded    []SpendingLimitRes `json:"exceeded"`
}

// FromSpendingLimit converts an entity to its response form.
func FromSpendingLimit(l *entity.SpendingLimit) SpendingLimitRes {
	return SpendingLimitRes{ID: l.ID, UserID: l.UserID, Limit: l.Limit, Active: l.Active}
}

// FromSpendingLimits converts a slice; the result is never nil.
func FromSpendingLimits(ls []entity.SpendingLimit) []SpendingLimitRes {
	out := make([]SpendingLimitRes, 0, len(ls))
	for i := range ls {
		out = append(out, FromSpendingLimit(&ls[i]))
	}
	return out
}

// FromLimitCheck converts a check result to its response form.
func FromLimitCheck(c *usecase.LimitCheck) LimitCheckRes {
	return LimitCheckRes{UserID: c.UserID, Consumption: c.Consumption, Exceeded: FromSpendingLimits(c.Exceeded)}
}
