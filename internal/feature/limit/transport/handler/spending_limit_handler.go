// Package handler provides the HTTP handlers of the spending limit feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"finance_tracker/internal/feature/limit/domain/entity"
	"finance_tracker/internal/feature/limit/transport/http/dto"
	"finance_tracker/internal/feature/limit/usecase"
	"finance_tracker/internal/platform/http/respond"
)

// SpendingLimitUsecase defines the limit operations used by the handler.
type SpendingLimitUsecase interface {
	GetByID(ctx context.Context, id int64) (*entity.SpendingLimit, error)
	GetAllActiveByUserID(ctx context.Context, userID int64) ([]entity.SpendingLimit, error)
	Create(ctx context.Context, in usecase.LimitInput) (int64, error)
	Update(ctx context.Context, id int64, in usecase.LimitInput) error
	Delete(ctx context.Context, id int64) error
}

// LimitChecker compares a user's monthly consumption with their active limits.
type LimitChecker interface {
	CheckSpendingLimit(ctx context.Context, userID int64) (*usecase.LimitCheck, error)
}

// SpendingLimitHandler serves /api/limits.
type SpendingLimitHandler struct {
	limits  SpendingLimitUsecase
	checker LimitChecker
}

// NewSpendingLimitHandler creates a SpendingLimitHandler.
func NewSpendingLimitHandler(limits SpendingLimitUsecase, checker LimitChecker) *SpendingLimitHandler {
	return &SpendingLimitHandler{limits: limits, checker: checker}
}

func (h *SpendingLimitHandler) Get(c *gin.Context) {
	id, err := respond.PathID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	l, err := h.limits.GetByID(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromSpendingLimit(l))
}

// GetByUser lists the active limits of the user in the id path parameter.
func (h *SpendingLimitHandler) GetByUser(c *gin.Context) {
	userID, err := respond.PathID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	ls, err := h.limits.GetAllActiveByUserID(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromSpendingLimits(ls))
}

// Exceeded reports the active limits of the user that this month's consumption exceeds.
func (h *SpendingLimitHandler) Exceeded(c *gin.Context) {
	userID, err := respond.PathID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	check, err := h.checker.CheckSpendingLimit(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromLimitCheck(check))
}

func (h *SpendingLimitHandler) Create(c *gin.Context) {
	var req dto.SpendingLimitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	id, err := h.limits.Create(c.Request.Context(), usecase.LimitInput{UserID: req.UserID, Limit: req.Limit, Active: req.Active})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, id)
}

func (h *SpendingLimitHandler) Update(c *gin.Context) {
	id, err := respond.PathID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	var req dto.SpendingLimitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	in := usecase.LimitInput{UserID: req.UserID, Limit: req.Limit, Active: req.Active}
	if err := h.limits.Update(c.Request.Context(), id, in); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, respond.MessageResponse{Message: "Successfully updated limit"})
}

func (h *SpendingLimitHandler) Delete(c *gin.Context) {
	id, err := respond.PathID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	if err := h.limits.Delete(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
