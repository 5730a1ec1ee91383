// Package di provides dependency injection factories for creating application components.
package di

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	auditadapters "finance_tracker/internal/feature/audit/adapters"
	goaladapters "finance_tracker/internal/feature/goal/adapters"
	goalusecase "finance_tracker/internal/feature/goal/usecase"
	limitadapters "finance_tracker/internal/feature/limit/adapters"
	limitusecase "finance_tracker/internal/feature/limit/usecase"
	txadapters "finance_tracker/internal/feature/transaction/adapters"
	txusecase "finance_tracker/internal/feature/transaction/usecase"
	useradapters "finance_tracker/internal/feature/user/adapters"
	userusecase "finance_tracker/internal/feature/user/usecase"
	"finance_tracker/internal/platform/cache"
	"finance_tracker/internal/platform/instrument"
)

// Models returns every row model to migrate.
func Models() []any {
	var models []any
	models = append(models, useradapters.Models()...)
	models = append(models, txadapters.Models()...)
	models = append(models, goaladapters.Models()...)
	models = append(models, limitadapters.Models()...)
	models = append(models, auditadapters.Models()...)
	return models
}

// Repositories groups the instrumented repositories.
type Repositories struct {
	Users        userusecase.UserRepository
	Transactions txusecase.TransactionRepository
	Goals        goalusecase.GoalRepository
	Limits       limitusecase.SpendingLimitRepository
	Audit        instrument.AuditSink
}

// NewRepositories wires the gorm adapters behind their logging decorators.
// Transaction aggregates are cached in Redis when rdb is non-nil.
func NewRepositories(db *gorm.DB, rdb *redis.Client, statsTTL time.Duration, log *slog.Logger) Repositories {
	txRepo := txadapters.NewLoggingTransactionRepository(txadapters.NewTransactionPostgres(db), log)

	return Repositories{
		Users:        useradapters.NewLoggingUserRepository(useradapters.NewUserPostgres(db), log),
		Transactions: cache.NewCachingTransactionRepository(rdb, statsTTL, txRepo, "stats"),
		Goals:        goaladapters.NewLoggingGoalRepository(goaladapters.NewGoalPostgres(db), log),
		Limits:       limitadapters.NewLoggingSpendingLimitRepository(limitadapters.NewSpendingLimitPostgres(db), log),
		Audit:        auditadapters.NewAuditPostgres(db),
	}
}
