// Package adapters persists audit records.
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"finance_tracker/internal/feature/audit/domain/entity"
	"finance_tracker/internal/platform/db"
	"finance_tracker/internal/platform/instrument"
)

type auditLogModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Action    string    `gorm:"size:32;not null"`
	UserID    *int64    `gorm:"index"`
	Email     *string   `gorm:"size:255"`
	Details   string    `gorm:"size:512;not null"`
	Timestamp time.Time `gorm:"not null;index"`
}

func (auditLogModel) TableName() string { return "audit_logs" }

// Models returns the row models owned by this package, for migrations.
func Models() []any { return []any{&auditLogModel{}} }

// auditPostgres is the write-only audit sink.
type auditPostgres struct {
	db *gorm.DB
}

var _ instrument.AuditSink = (*auditPostgres)(nil)

// NewAuditPostgres creates an audit sink on db.
func NewAuditPostgres(db *gorm.DB) *auditPostgres {
	return &auditPostgres{db: db}
}

// Save inserts one audit record and returns its generated id.
func (r *auditPostgres) Save(ctx context.Context, a *entity.AuditLog) (int64, error) {
	m := auditLogModel{
		Action:    a.Action,
		UserID:    a.UserID,
		Email:     a.Email,
		Details:   a.Details,
		Timestamp: a.Timestamp,
	}
	err := db.RunInTx(ctx, r.db, "save audit log", func(tx *gorm.DB) error {
		return db.Inserted(tx.Create(&m), m.ID)
	})
	if err != nil {
		return 0, err
	}
	a.ID = m.ID
	return m.ID, nil
}
