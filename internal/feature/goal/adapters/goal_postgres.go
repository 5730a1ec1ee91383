// Package adapters provides the repository implementations for the goal feature.
package adapters

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance_tracker/internal/feature/goal/domain/entity"
	"finance_tracker/internal/feature/goal/usecase"
	"finance_tracker/internal/platform/db"
	"finance_tracker/internal/shared/apperr"
)

type goalModel struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	UserID       int64           `gorm:"index;not null"`
	Description  string          `gorm:"size:255;not null"`
	TargetAmount decimal.Decimal `gorm:"type:numeric(19,2);not null"`
}

func (goalModel) TableName() string { return "goals" }

// Models returns the row models to migrate.
func Models() []any { return []any{&goalModel{}} }

func toGoalModel(g *entity.Goal) goalModel {
	return goalModel{ID: g.ID, UserID: g.UserID, Description: g.Description, TargetAmount: g.TargetAmount}
}

func (m goalModel) toEntity() entity.Goal {
	return entity.Goal{ID: m.ID, UserID: m.UserID, Description: m.Description, TargetAmount: m.TargetAmount}
}

type goalPostgres struct {
	db *gorm.DB
}

var _ usecase.GoalRepository = (*goalPostgres)(nil)

// NewGoalPostgres creates a repository on the given connection.
func NewGoalPostgres(db *gorm.DB) *goalPostgres {
	return &goalPostgres{db: db}
}

func (r *goalPostgres) FindByID(ctx context.Context, id int64) (*entity.Goal, error) {
	var m goalModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrGoalNotFound
		}
		return nil, apperr.Persistence("find goal by id", err)
	}
	g := m.toEntity()
	return &g, nil
}

func (r *goalPostgres) FindAll(ctx context.Context) ([]entity.Goal, error) {
	return r.find("find all goals", r.db.WithContext(ctx))
}

func (r *goalPostgres) FindAllByUserID(ctx context.Context, userID int64) ([]entity.Goal, error) {
	return r.find("find goals by user", r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *goalPostgres) find(op string, q *gorm.DB) ([]entity.Goal, error) {
	var rows []goalModel
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, apperr.Persistence(op, err)
	}
	out := make([]entity.Goal, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

func (r *goalPostgres) Save(ctx context.Context, g *entity.Goal) (int64, error) {
	m := toGoalModel(g)
	m.ID = 0
	err := db.RunInTx(ctx, r.db, "save goal", func(tx *gorm.DB) error {
		return db.Inserted(tx.Create(&m), m.ID)
	})
	if err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (r *goalPostgres) Update(ctx context.Context, g *entity.Goal) error {
	m := toGoalModel(g)
	return db.RunInTx(ctx, r.db, "update goal", func(tx *gorm.DB) error {
		res := tx.Model(&goalModel{}).Where("id = ?", m.ID).Updates(map[string]any{
			"user_id":       m.UserID,
			"description":   m.Description,
			"target_amount": m.TargetAmount,
		})
		return db.Affected(res, usecase.ErrGoalNotFound)
	})
}

func (r *goalPostgres) DeleteByID(ctx context.Context, id int64) error {
	return db.RunInTx(ctx, r.db, "delete goal", func(tx *gorm.DB) error {
		return db.Affected(tx.Delete(&goalModel{}, id), usecase.ErrGoalNotFound)
	})
}
