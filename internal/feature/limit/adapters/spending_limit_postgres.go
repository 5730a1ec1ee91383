// Package adapters provides the repository implementations for the spending limit feature.
package adapters

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance_tracker/internal/feature/limit/domain/entity"
	"finance_tracker/internal/feature/limit/usecase"
	"finance_tracker/internal/platform/db"
	"finance_tracker/internal/shared/apperr"
)

type spendingLimitModel struct {
	ID     int64           `gorm:"primaryKey;autoIncrement"`
	UserID int64           `gorm:"index;not null"`
	Limit  decimal.Decimal `gorm:"column:limit_amount;type:numeric(19,2);not null"`
	Active bool            `gorm:"column:is_active;not null"`
}

func (spendingLimitModel) TableName() string { return "spending_limits" }

// Models returns the row models to migrate.
func Models() []any { return []any{&spendingLimitModel{}} }

func toSpendingLimitModel(l *entity.SpendingLimit) spendingLimitModel {
	return spendingLimitModel{ID: l.ID, UserID: l.UserID, Limit: l.Limit, Active: l.Active}
}

func (m spendingLimitModel) toEntity() entity.SpendingLimit {
	return entity.SpendingLimit{ID: m.ID, UserID: m.UserID, Limit: m.Limit, Active: m.Active}
}

type spendingLimitPostgres struct {
	db *gorm.DB
}

var _ usecase.SpendingLimitRepository = (*spendingLimitPostgres)(nil)

// NewSpendingLimitPostgres creates a repository on the given connection.
func NewSpendingLimitPostgres(db *gorm.DB) *spendingLimitPostgres {
	return &spendingLimitPostgres{db: db}
}

func (r *spendingLimitPostgres) FindByID(ctx context.Context, id int64) (*entity.SpendingLimit, error) {
	var m spendingLimitModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSpendingLimitNotFound
		}
		return nil, apperr.Persistence("find spending limit by id", err)
	}
	l := m.toEntity()
	return &l, nil
}

func (r *spendingLimitPostgres) FindAllActiveByUserID(ctx context.Context, userID int64) ([]entity.SpendingLimit, error) {
	var rows []spendingLimitModel
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND user_id = ?", true, userID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Persistence("find active spending limits", err)
	}
	out := make([]entity.SpendingLimit, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

func (r *spendingLimitPostgres) Save(ctx context.Context, l *entity.SpendingLimit) (int64, error) {
	m := toSpendingLimitModel(l)
	m.ID = 0
	err := db.RunInTx(ctx, r.db, "save spending limit", func(tx *gorm.DB) error {
		return db.Inserted(tx.Create(&m), m.ID)
	})
	if err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (r *spendingLimitPostgres) Update(ctx context.Context, l *entity.SpendingLimit) error {
	m := toSpendingLimitModel(l)
	return db.RunInTx(ctx, r.db, "update spending limit", func(tx *gorm.DB) error {
		res := tx.Model(&spendingLimitModel{}).Where("id = ?", m.ID).Updates(map[string]any{
			"user_id":      m.UserID,
			"limit_amount": m.Limit,
			"is_active":    m.Active,
		})
		return db.Affected(res, usecase.ErrSpendingLimitNotFound)
	})
}

func (r *spendingLimitPostgres) DeleteByID(ctx context.Context, id int64) error {
	return db.RunInTx(ctx, r.db, "delete spending limit", func(tx *gorm.DB) error {
		return db.Affected(tx.Delete(&spendingLimitModel{}, id), usecase.ErrSpendingLimitNotFound)
	})
}
