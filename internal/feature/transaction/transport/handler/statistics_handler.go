package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finance_tracker/internal/feature/transaction/domain/entity"
	"finance_tracker/internal/platform/http/respond"
)

// StatisticsUsecase defines the per-user aggregates served under
// /api/transactions/statistics/:userId.
type StatisticsUsecase interface {
	Consumption(ctx context.Context, userID int64) (decimal.Decimal, error)
	Income(ctx context.Context, userID int64) (decimal.Decimal, error)
	Balance(ctx context.Context, userID int64) (decimal.Decimal, error)
	ConsumptionForCurrentMonth(ctx context.Context, userID int64) (decimal.Decimal, error)
	ConsumptionForPeriod(ctx context.Context, userID int64, start, end time.Time) (decimal.Decimal, error)
	IncomeForPeriod(ctx context.Context, userID int64, start, end time.Time) (decimal.Decimal, error)
	ConsumptionByCategory(ctx context.Context, userID int64, category entity.Category) (decimal.Decimal, error)
}

// StatisticsHandler serves the aggregate endpoints.
type StatisticsHandler struct {
	stats StatisticsUsecase
}

// NewStatisticsHandler creates a StatisticsHandler.
func NewStatisticsHandler(stats StatisticsUsecase) *StatisticsHandler {
	return &StatisticsHandler{stats: stats}
}

func (h *StatisticsHandler) Consumption(c *gin.Context) {
	h.serve(c, h.stats.Consumption)
}

func (h *StatisticsHandler) Income(c *gin.Context) {
	h.serve(c, h.stats.Income)
}

func (h *StatisticsHandler) Balance(c *gin.Context) {
	h.serve(c, h.stats.Balance)
}

func (h *StatisticsHandler) ConsumptionByMonth(c *gin.Context) {
	h.serve(c, h.stats.ConsumptionForCurrentMonth)
}

func (h *StatisticsHandler) ConsumptionByPeriod(c *gin.Context) {
	h.servePeriod(c, h.stats.ConsumptionForPeriod)
}

func (h *StatisticsHandler) IncomeByPeriod(c *gin.Context) {
	h.servePeriod(c, h.stats.IncomeForPeriod)
}

func (h *StatisticsHandler) ConsumptionByCategory(c *gin.Context) {
	category, err := entity.ParseCategory(c.Query("category"))
	if err != nil {
		respond.BadRequest(c, err)
		return
	}
	h.serve(c, func(ctx context.Context, userID int64) (decimal.Decimal, error) {
		return h.stats.ConsumptionByCategory(ctx, userID, category)
	})
}

func (h *StatisticsHandler) serve(c *gin.Context, fn func(ctx context.Context, userID int64) (decimal.Decimal, error)) {
	userID, err := respond.PathID(c, "userId")
	if err != nil {
		respond.Error(c, err)
		return
	}
	amount, err := fn(c.Request.Context(), userID)
	respondAmount(c, userID, amount, err)
}

func (h *StatisticsHandler) servePeriod(c *gin.Context, fn func(ctx context.Context, userID int64, start, end time.Time) (decimal.Decimal, error)) {
	start, err := parseDate("startDate", c.Query("startDate"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	end, err := parseDate("endDate", c.Query("endDate"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	h.serve(c, func(ctx context.Context, userID int64) (decimal.Decimal, error) {
		return fn(ctx, userID, start, end)
	})
}
