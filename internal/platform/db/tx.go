package db

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"finance_tracker/internal/shared/apperr"
)

// RunInTx executes fn as a single unit of work on one pooled connection.
//
// Begin takes a connection out of the pool with auto-commit disabled. If fn
// returns an error or panics the transaction is rolled back before the
// connection goes back to the pool; otherwise it is committed. Unclassified
// failures are wrapped as persistence errors with the original cause attached.
func RunInTx(ctx context.Context, db *gorm.DB, op string, fn func(tx *gorm.DB) error) error {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return apperr.Persistence(op, tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			rollback(tx, op)
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		rollback(tx, op)
		return apperr.Persistence(op, err)
	}

	if err := tx.Commit().Error; err != nil {
		rollback(tx, op)
		return apperr.Persistence(op, err)
	}
	return nil
}

// rollback aborts tx. A failed rollback is logged; the caller still reports the
// error that triggered it.
func rollback(tx *gorm.DB, op string) {
	if err := tx.Rollback().Error; err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, gorm.ErrInvalidTransaction) {
		slog.Error("rollback failed", "op", op, "error", err)
	}
}

// Inserted checks the result of a create statement. Success is defined by the
// recovery of a store-generated identifier, not only by the row count.
func Inserted(res *gorm.DB, id int64) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNoRowsAffected
	}
	if id <= 0 {
		return apperr.ErrNoGeneratedID
	}
	return nil
}

// Affected checks the result of an update or delete by identifier and returns
// notFound when no row matched.
func Affected(res *gorm.DB, notFound error) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound
	}
	return nil
}

// IsUniqueViolation reports whether err comes from a duplicate unique key,
// either as translated by gorm or as a raw postgres error code.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
