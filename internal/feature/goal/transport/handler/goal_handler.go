// Package handler provides the HTTP handlers of the goal feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"finance_tracker/internal/feature/goal/domain/entity"
	"finance_tracker/internal/feature/goal/transport/http/dto"
	"finance_tracker/internal/feature/goal/usecase"
	"finance_tracker/internal/platform/http/respond"
)

// GoalUsecase defines the goal operations used by the handler.
type GoalUsecase interface {
	GetByID(ctx context.Context, id int64) (*entity.Goal, error)
	GetAll(ctx context.Context) ([]entity.Goal, error)
	GetAllByUserID(ctx context.Context, userID int64) ([]entity.Goal, error)
	Create(ctx context.Context, in usecase.CreateInput) (int64, error)
	Update(ctx context.Context, in usecase.UpdateInput) error
	Delete(ctx context.Context, id int64) error
}

// GoalHandler serves /api/goals.
type GoalHandler struct {
	goals GoalUsecase
}

// NewGoalHandler creates a GoalHandler.
func NewGoalHandler(goals GoalUsecase) *GoalHandler {
	return &GoalHandler{goals: goals}
}

func (h *GoalHandler) GetAll(c *gin.Context) {
	gs, err := h.goals.GetAll(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromGoals(gs))
}

func (h *GoalHandler) Get(c *gin.Context) {
	id, err := respond.PathID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	g, err := h.goals.GetByID(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromGoal(g))
}

// GetByUser lists the goals of the user in the id path parameter.
func (h *GoalHandler) GetByUser(c *gin.Context) {
	userID, err := respond.PathID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	gs, err := h.goals.GetAllByUserID(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromGoals(gs))
}

func (h *GoalHandler) Create(c *gin.Context) {
	var req dto.CreateGoalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	id, err := h.goals.Create(c.Request.Context(), usecase.CreateInput{
		UserID:       req.UserID,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, id)
}

func (h *GoalHandler) Update(c *gin.Context) {
	id, err := respond.PathID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	var req dto.UpdateGoalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	in := usecase.UpdateInput{ID: id, UserID: req.UserID, Description: req.Description, TargetAmount: req.TargetAmount}
	if err := h.goals.Update(c.Request.Context(), in); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, respond.MessageResponse{Message: "Successfully updated goal"})
}

func (h *GoalHandler) Delete(c *gin.Context) {
	id, err := respond.PathID(c, "id")
	if err != nil {
		respond.Error(c, err)
		return
	}
	if err := h.goals.Delete(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
