// Package adapters provides the repository implementations for the transaction feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance_tracker/internal/feature/transaction/domain/entity"
	"finance_tracker/internal/feature/transaction/usecase"
	"finance_tracker/internal/platform/db"
	"finance_tracker/internal/shared/apperr"
)

type transactionModel struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	UserID      int64           `gorm:"index;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	Category    string          `gorm:"size:32;not null"`
	Description string          `gorm:"size:255;not null"`
	Date        time.Time       `gorm:"type:date;not null;index"`
	Income      bool            `gorm:"column:is_income;not null"`
}

func (transactionModel) TableName() string { return "transactions" }

// Models returns the row models to migrate.
func Models() []any { return []any{&transactionModel{}} }

func toTransactionModel(t *entity.Transaction) transactionModel {
	return transactionModel{
		ID:          t.ID,
		UserID:      t.UserID,
		Amount:      t.Amount,
		Category:    string(t.Category),
		Description: t.Description,
		Date:        entity.Day(t.Date),
		Income:      t.Income,
	}
}

func (m transactionModel) toEntity() entity.Transaction {
	return entity.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		Amount:      m.Amount,
		Category:    entity.Category(m.Category),
		Description: m.Description,
		Date:        entity.Day(m.Date),
		Income:      m.Income,
	}
}

// transactionPostgres is the GORM implementation of usecase.TransactionRepository.
type transactionPostgres struct {
	db  *gorm.DB
	now func() time.Time
}

var _ usecase.TransactionRepository = (*transactionPostgres)(nil)

// NewTransactionPostgres creates a repository on the given connection.
func NewTransactionPostgres(db *gorm.DB) *transactionPostgres {
	return &transactionPostgres{db: db, now: time.Now}
}

// FindByID returns usecase.ErrTransactionNotFound when no row has the id.
func (r *transactionPostgres) FindByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	var m transactionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTransactionNotFound
		}
		return nil, apperr.Persistence("find transaction by id", err)
	}
	t := m.toEntity()
	return &t, nil
}

func (r *transactionPostgres) FindAll(ctx context.Context) ([]entity.Transaction, error) {
	return r.find(ctx, "find all transactions", r.db.WithContext(ctx))
}

func (r *transactionPostgres) FindAllByUserID(ctx context.Context, userID int64) ([]entity.Transaction, error) {
	return r.find(ctx, "find transactions by user", r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *transactionPostgres) FindAllByUserIDAndDate(ctx context.Context, userID int64, date time.Time) ([]entity.Transaction, error) {
	q := r.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, entity.Day(date))
	return r.find(ctx, "find transactions by user and date", q)
}

func (r *transactionPostgres) FindAllByUserIDAndCategory(ctx context.Context, userID int64, category entity.Category) ([]entity.Transaction, error) {
	q := r.db.WithContext(ctx).Where("user_id = ? AND category = ?", userID, string(category))
	return r.find(ctx, "find transactions by user and category", q)
}

func (r *transactionPostgres) FindAllByUserIDAndIncome(ctx context.Context, userID int64, income bool) ([]entity.Transaction, error) {
	q := r.db.WithContext(ctx).Where("user_id = ? AND is_income = ?", userID, income)
	return r.find(ctx, "find transactions by user and income flag", q)
}

// find runs q ordered by id. An empty result is an empty slice.
func (r *transactionPostgres) find(_ context.Context, op string, q *gorm.DB) ([]entity.Transaction, error) {
	var rows []transactionModel
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, apperr.Persistence(op, err)
	}
	out := make([]entity.Transaction, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}

// Save inserts t and returns the generated id.
func (r *transactionPostgres) Save(ctx context.Context, t *entity.Transaction) (int64, error) {
	m := toTransactionModel(t)
	m.ID = 0
	err := db.RunInTx(ctx, r.db, "save transaction", func(tx *gorm.DB) error {
		return db.Inserted(tx.Create(&m), m.ID)
	})
	if err != nil {
		return 0, err
	}
	return m.ID, nil
}

// Update replaces every field of the row with t.ID.
// Zero affected rows rolls back and returns usecase.ErrTransactionNotFound.
func (r *transactionPostgres) Update(ctx context.Context, t *entity.Transaction) error {
	m := toTransactionModel(t)
	return db.RunInTx(ctx, r.db, "update transaction", func(tx *gorm.DB) error {
		res := tx.Model(&transactionModel{}).Where("id = ?", m.ID).Updates(map[string]any{
			"user_id":     m.UserID,
			"amount":      m.Amount,
			"category":    m.Category,
			"description": m.Description,
			"date":        m.Date,
			"is_income":   m.Income,
		})
		return db.Affected(res, usecase.ErrTransactionNotFound)
	})
}

// DeleteByID removes the row with id.
// Zero affected rows rolls back and returns usecase.ErrTransactionNotFound.
func (r *transactionPostgres) DeleteByID(ctx context.Context, id int64) error {
	return db.RunInTx(ctx, r.db, "delete transaction", func(tx *gorm.DB) error {
		return db.Affected(tx.Delete(&transactionModel{}, id), usecase.ErrTransactionNotFound)
	})
}

func (r *transactionPostgres) GetConsumptionByUserID(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return r.sum(ctx, "sum consumption", "user_id = ? AND is_income = ?", userID, false)
}

func (r *transactionPostgres) GetIncomeByUserID(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return r.sum(ctx, "sum income", "user_id = ? AND is_income = ?", userID, true)
}

// GetConsumptionByUserIDForPeriod sums expenses dated within [start, end], both inclusive.
func (r *transactionPostgres) GetConsumptionByUserIDForPeriod(ctx context.Context, userID int64, start, end time.Time) (decimal.Decimal, error) {
	return r.sumPeriod(ctx, "sum consumption for period", userID, false, start, end)
}

// GetIncomeByUserIDForPeriod sums income dated within [start, end], both inclusive.
func (r *transactionPostgres) GetIncomeByUserIDForPeriod(ctx context.Context, userID int64, start, end time.Time) (decimal.Decimal, error) {
	return r.sumPeriod(ctx, "sum income for period", userID, true, start, end)
}

// GetConsumptionByUserIDForCurrentMonth sums expenses from the first to the last
// calendar day of the current month.
func (r *transactionPostgres) GetConsumptionByUserIDForCurrentMonth(ctx context.Context, userID int64) (decimal.Decimal, error) {
	first, last := entity.MonthBounds(r.now())
	return r.sumPeriod(ctx, "sum consumption for current month", userID, false, first, last)
}

// GetConsumptionByUserIDAndCategory sums every transaction of the user in category.
func (r *transactionPostgres) GetConsumptionByUserIDAndCategory(ctx context.Context, userID int64, category entity.Category) (decimal.Decimal, error) {
	return r.sum(ctx, "sum by category", "user_id = ? AND category = ?", userID, string(category))
}

// GetBalanceByUserID returns total income minus total consumption.
func (r *transactionPostgres) GetBalanceByUserID(ctx context.Context, userID int64) (decimal.Decimal, error) {
	income, err := r.GetIncomeByUserID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	consumption, err := r.GetConsumptionByUserID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return income.Sub(consumption), nil
}

func (r *transactionPostgres) sumPeriod(ctx context.Context, op string, userID int64, income bool, start, end time.Time) (decimal.Decimal, error) {
	start, end = entity.Day(start), entity.Day(end)
	if start.After(end) {
		return decimal.Zero, apperr.InvalidArgument("period start %s is after end %s",
			start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return r.sum(ctx, op, "user_id = ? AND is_income = ? AND date BETWEEN ? AND ?", userID, income, start, end)
}

// sum returns SUM(amount) over the rows matching query, or zero when none match.
func (r *transactionPostgres) sum(ctx context.Context, op, query string, args ...any) (decimal.Decimal, error) {
	var out struct {
		Total decimal.NullDecimal
	}
	err := r.db.WithContext(ctx).
		Model(&transactionModel{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where(query, args...).
		Scan(&out).Error
	if err != nil {
		return decimal.Zero, apperr.Persistence(op, err)
	}
	if !out.Total.Valid {
		return decimal.Zero, nil
	}
	return out.Total.Decimal, nil
}
