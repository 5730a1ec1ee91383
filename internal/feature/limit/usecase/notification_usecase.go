package usecase

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"finance_tracker/internal/feature/limit/domain/entity"
	"finance_tracker/internal/shared/apperr"
)

// ConsumptionReader provides the consumption of the current calendar month.
type ConsumptionReader interface {
	GetConsumptionByUserIDForCurrentMonth(ctx context.Context, userID int64) (decimal.Decimal, error)
}

// LimitCheck is the outcome of comparing a month's consumption with the active limits.
type LimitCheck struct {
	UserID      int64
	Consumption decimal.Decimal
	Exceeded    []entity.SpendingLimit
}

type notificationUsecase struct {
	limits      SpendingLimitRepository
	consumption ConsumptionReader
	log         *slog.Logger
}

// NewNotificationUsecase creates the spending limit checker.
func NewNotificationUsecase(limits SpendingLimitRepository, consumption ConsumptionReader, log *slog.Logger) *notificationUsecase {
	return &notificationUsecase{limits: limits, consumption: consumption, log: log}
}

// CheckSpendingLimit compares the user's consumption of the current month with
// each active limit and reports the limits it exceeds. Every exceeded limit is
// logged as a warning.
func (u *notificationUsecase) CheckSpendingLimit(ctx context.Context, userID int64) (*LimitCheck, error) {
	if err := apperr.RequirePositiveID("userId", userID); err != nil {
		return nil, err
	}
	limits, err := u.limits.FindAllActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	consumption, err := u.consumption.GetConsumptionByUserIDForCurrentMonth(ctx, userID)
	if err != nil {
		return nil, err
	}

	check := &LimitCheck{UserID: userID, Consumption: consumption, Exceeded: []entity.SpendingLimit{}}
	for _, l := range limits {
		if !l.ExceededBy(consumption) {
			continue
		}
		check.Exceeded = append(check.Exceeded, l)
		u.log.WarnContext(ctx, "monthly spending limit exceeded",
			"user_id", userID,
			"limit_id", l.ID,
			"limit", l.Limit.String(),
			"consumption", consumption.String(),
		)
	}
	return check, nil
}
