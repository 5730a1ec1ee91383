// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"finance_tracker/internal/feature/transaction/domain/entity"
	"finance_tracker/internal/feature/transaction/usecase"
)

// CachingTransactionRepository decorates a TransactionRepository with Redis
// caching of the per-user aggregates. Finders pass straight through the
// embedded repository; every write invalidates the owner's cached aggregates.
type CachingTransactionRepository struct {
	usecase.TransactionRepository

	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	now       func() time.Time
}

var _ usecase.TransactionRepository = (*CachingTransactionRepository)(nil)

// NewCachingTransactionRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "stats".
// A nil rdb disables caching.
func NewCachingTransactionRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TransactionRepository, namespace string) *CachingTransactionRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "stats"
	}
	return &CachingTransactionRepository{
		TransactionRepository: inner,
		rdb:                   rdb,
		ttl:                   ttl,
		namespace:             namespace,
		now:                   time.Now,
	}
}

func (c *CachingTransactionRepository) GetConsumptionByUserID(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return c.cached(ctx, c.key(userID, "consumption"), c.ttl, func() (decimal.Decimal, error) {
		return c.TransactionRepository.GetConsumptionByUserID(ctx, userID)
	})
}

func (c *CachingTransactionRepository) GetIncomeByUserID(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return c.cached(ctx, c.key(userID, "income"), c.ttl, func() (decimal.Decimal, error) {
		return c.TransactionRepository.GetIncomeByUserID(ctx, userID)
	})
}

func (c *CachingTransactionRepository) GetBalanceByUserID(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return c.cached(ctx, c.key(userID, "balance"), c.ttl, func() (decimal.Decimal, error) {
		return c.TransactionRepository.GetBalanceByUserID(ctx, userID)
	})
}

func (c *CachingTransactionRepository) GetConsumptionByUserIDAndCategory(ctx context.Context, userID int64, category entity.Category) (decimal.Decimal, error) {
	return c.cached(ctx, c.key(userID, "category", string(category)), c.ttl, func() (decimal.Decimal, error) {
		return c.TransactionRepository.GetConsumptionByUserIDAndCategory(ctx, userID, category)
	})
}

func (c *CachingTransactionRepository) GetConsumptionByUserIDForPeriod(ctx context.Context, userID int64, start, end time.Time) (decimal.Decimal, error) {
	key := c.key(userID, "consumption", day(start), day(end))
	return c.cached(ctx, key, c.ttl, func() (decimal.Decimal, error) {
		return c.TransactionRepository.GetConsumptionByUserIDForPeriod(ctx, userID, start, end)
	})
}

func (c *CachingTransactionRepository) GetIncomeByUserIDForPeriod(ctx context.Context, userID int64, start, end time.Time) (decimal.Decimal, error) {
	key := c.key(userID, "income", day(start), day(end))
	return c.cached(ctx, key, c.ttl, func() (decimal.Decimal, error) {
		return c.TransactionRepository.GetIncomeByUserIDForPeriod(ctx, userID, start, end)
	})
}

// GetConsumptionByUserIDForCurrentMonth caches under the month's key and never
// lets the entry outlive the month.
func (c *CachingTransactionRepository) GetConsumptionByUserIDForCurrentMonth(ctx context.Context, userID int64) (decimal.Decimal, error) {
	now := c.now()
	ttl := min(c.ttl, TimeUntilNextMonth(now))
	return c.cached(ctx, c.key(userID, "month", now.UTC().Format("2006-01")), ttl, func() (decimal.Decimal, error) {
		return c.TransactionRepository.GetConsumptionByUserIDForCurrentMonth(ctx, userID)
	})
}

// Save inserts t and invalidates the owner's cached aggregates.
func (c *CachingTransactionRepository) Save(ctx context.Context, t *entity.Transaction) (int64, error) {
	id, err := c.TransactionRepository.Save(ctx, t)
	if err != nil {
		return 0, err
	}
	c.invalidate(ctx, t.UserID)
	return id, nil
}

// Update stores t and invalidates the aggregates of both the previous and the new owner.
func (c *CachingTransactionRepository) Update(ctx context.Context, t *entity.Transaction) error {
	prev := c.owner(ctx, t.ID)
	if err := c.TransactionRepository.Update(ctx, t); err != nil {
		return err
	}
	if prev != 0 && prev != t.UserID {
		c.invalidate(ctx, prev)
	}
	c.invalidate(ctx, t.UserID)
	return nil
}

// DeleteByID removes the row and invalidates its owner's aggregates.
// When the owner cannot be resolved the whole namespace is dropped.
func (c *CachingTransactionRepository) DeleteByID(ctx context.Context, id int64) error {
	owner := c.owner(ctx, id)
	if err := c.TransactionRepository.DeleteByID(ctx, id); err != nil {
		return err
	}
	if owner == 0 {
		if c.rdb != nil {
			_ = c.deleteByPattern(ctx, c.namespace+":*")
		}
		return nil
	}
	c.invalidate(ctx, owner)
	return nil
}

// cached returns the decimal under key, or loads, stores and returns it.
func (c *CachingTransactionRepository) cached(ctx context.Context, key string, ttl time.Duration, load func() (decimal.Decimal, error)) (decimal.Decimal, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	if s, err := c.rdb.Get(ctx, key).Result(); err == nil && s != "" {
		if d, err := decimal.NewFromString(s); err == nil {
			return d, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	d, err := load()
	if err != nil {
		return decimal.Zero, err
	}
	_ = c.rdb.Set(ctx, key, d.String(), ttl).Err()
	return d, nil
}

// owner returns the user of transaction id, or 0 when it cannot be read.
func (c *CachingTransactionRepository) owner(ctx context.Context, id int64) int64 {
	if c.rdb == nil {
		return 0
	}
	t, err := c.TransactionRepository.FindByID(ctx, id)
	if err != nil {
		return 0
	}
	return t.UserID
}

func (c *CachingTransactionRepository) invalidate(ctx context.Context, userID int64) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.userPrefix(userID)+"*") // Best effort
}

// key generates a cache key for a user's aggregate.
func (c *CachingTransactionRepository) key(userID int64, parts ...string) string {
	for i, p := range parts {
		parts[i] = safe(p)
	}
	return c.userPrefix(userID) + strings.Join(parts, ":")
}

func (c *CachingTransactionRepository) userPrefix(userID int64) string {
	return fmt.Sprintf("%s:%d:", c.namespace, userID)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingTransactionRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

func day(t time.Time) string { return entity.Day(t).Format(time.DateOnly) }

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
