package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance_tracker/internal/feature/transaction/domain/entity"
	"finance_tracker/internal/feature/transaction/usecase"
)

// mockTransactionRepository はテスト用のTransactionRepositoryモック実装です。
// 上書きしていないメソッドを呼ぶと埋め込みのnilインターフェースでpanicします。
type mockTransactionRepository struct {
	usecase.TransactionRepository

	balanceFn  func(ctx context.Context, userID int64) (decimal.Decimal, error)
	monthFn    func(ctx context.Context, userID int64) (decimal.Decimal, error)
	findByIDFn func(ctx context.Context, id int64) (*entity.Transaction, error)
	saveFn     func(ctx context.Context, t *entity.Transaction) (int64, error)
	updateFn   func(ctx context.Context, t *entity.Transaction) error
	deleteFn   func(ctx context.Context, id int64) error

	balanceCalls int
}

func (m *mockTransactionRepository) GetBalanceByUserID(ctx context.Context, userID int64) (decimal.Decimal, error) {
	m.balanceCalls++
	if m.balanceFn != nil {
		return m.balanceFn(ctx, userID)
	}
	return decimal.Zero, nil
}

func (m *mockTransactionRepository) GetConsumptionByUserIDForCurrentMonth(ctx context.Context, userID int64) (decimal.Decimal, error) {
	if m.monthFn != nil {
		return m.monthFn(ctx, userID)
	}
	return decimal.Zero, nil
}

func (m *mockTransactionRepository) FindByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, usecase.ErrTransactionNotFound
}

func (m *mockTransactionRepository) Save(ctx context.Context, t *entity.Transaction) (int64, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, t)
	}
	return 1, nil
}

func (m *mockTransactionRepository) Update(ctx context.Context, t *entity.Transaction) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, t)
	}
	return nil
}

func (m *mockTransactionRepository) DeleteByID(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func fixedBalance(v string) func(context.Context, int64) (decimal.Decimal, error) {
	return func(context.Context, int64) (decimal.Decimal, error) { return decimal.RequireFromString(v), nil }
}

// TestNewCachingTransactionRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingTransactionRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{"default values when zero/empty", 0, "", 5 * time.Minute, "stats"},
		{"negative ttl uses default", -time.Minute, "", 5 * time.Minute, "stats"},
		{"custom values preserved", 10 * time.Minute, "custom", 10 * time.Minute, "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingTransactionRepository(nil, tt.ttl, &mockTransactionRepository{}, tt.namespace)

			assert.Equal(t, tt.expectedTTL, repo.ttl)
			assert.Equal(t, tt.expectedNamespace, repo.namespace)
		})
	}
}

// TestCachingTransactionRepository_NilRedis はRedisがnilの場合にキャッシュをバイパスすることを検証します。
func TestCachingTransactionRepository_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockTransactionRepository{balanceFn: fixedBalance("48800")}
	repo := NewCachingTransactionRepository(nil, 0, inner, "")

	for i := 0; i < 2; i++ {
		got, err := repo.GetBalanceByUserID(context.Background(), 1234)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(48800).Equal(got))
	}
	assert.Equal(t, 2, inner.balanceCalls, "every call reaches the store")

	_, err := repo.Save(context.Background(), &entity.Transaction{UserID: 1234})
	assert.NoError(t, err, "writes need no redis")
	assert.NoError(t, repo.DeleteByID(context.Background(), 9))
}

// TestCachingTransactionRepository_CacheHit はキャッシュヒット時に内部リポジトリを呼ばないことを検証します。
func TestCachingTransactionRepository_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()
	mock.ExpectGet("stats:1234:balance").SetVal("48800.00")

	inner := &mockTransactionRepository{balanceFn: fixedBalance("1")}
	repo := NewCachingTransactionRepository(rdb, 5*time.Minute, inner, "stats")

	got, err := repo.GetBalanceByUserID(context.Background(), 1234)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(48800).Equal(got))
	assert.Zero(t, inner.balanceCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingTransactionRepository_CacheMiss はキャッシュミス時にストアから読み込み、キャッシュに保存することを検証します。
func TestCachingTransactionRepository_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()
	mock.ExpectGet("stats:1234:balance").RedisNil()
	mock.ExpectSet("stats:1234:balance", "48800", 5*time.Minute).SetVal("OK")

	inner := &mockTransactionRepository{balanceFn: fixedBalance("48800")}
	repo := NewCachingTransactionRepository(rdb, 5*time.Minute, inner, "stats")

	got, err := repo.GetBalanceByUserID(context.Background(), 1234)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(48800).Equal(got))
	assert.Equal(t, 1, inner.balanceCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingTransactionRepository_CorruptedEntry は壊れたキャッシュを削除してストアから再取得することを検証します。
func TestCachingTransactionRepository_CorruptedEntry(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()
	mock.ExpectGet("stats:1234:balance").SetVal("not-a-number")
	mock.ExpectDel("stats:1234:balance").SetVal(1)
	mock.ExpectSet("stats:1234:balance", "10", 5*time.Minute).SetVal("OK")

	repo := NewCachingTransactionRepository(rdb, 0, &mockTransactionRepository{balanceFn: fixedBalance("10")}, "")

	got, err := repo.GetBalanceByUserID(context.Background(), 1234)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingTransactionRepository_StoreErrorNotCached はストアのエラーをキャッシュせずに返すことを検証します。
func TestCachingTransactionRepository_StoreErrorNotCached(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()
	mock.ExpectGet("stats:1234:balance").RedisNil()

	storeErr := errors.New("db down")
	inner := &mockTransactionRepository{
		balanceFn: func(context.Context, int64) (decimal.Decimal, error) { return decimal.Zero, storeErr },
	}
	repo := NewCachingTransactionRepository(rdb, 0, inner, "")

	_, err := repo.GetBalanceByUserID(context.Background(), 1234)

	assert.ErrorIs(t, err, storeErr)
	assert.NoError(t, mock.ExpectationsWereMet(), "no SET after a failed load")
}

// TestCachingTransactionRepository_CurrentMonthTTL は月末をまたがないTTLで保存することを検証します。
func TestCachingTransactionRepository_CurrentMonthTTL(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()
	mock.ExpectGet("stats:1234:month:2025-03").RedisNil()
	mock.ExpectSet("stats:1234:month:2025-03", "1230", 2*time.Minute).SetVal("OK")

	inner := &mockTransactionRepository{monthFn: fixedBalance("1230")}
	repo := NewCachingTransactionRepository(rdb, time.Hour, inner, "")
	repo.now = func() time.Time { return time.Date(2025, 3, 31, 23, 58, 0, 0, time.UTC) }

	got, err := repo.GetConsumptionByUserIDForCurrentMonth(context.Background(), 1234)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1230).Equal(got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingTransactionRepository_SaveInvalidates は保存後に所有ユーザーのキャッシュが削除されることを検証します。
func TestCachingTransactionRepository_SaveInvalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()
	mock.ExpectScan(0, "stats:1234:*", 200).SetVal([]string{"stats:1234:balance", "stats:1234:income"}, 0)
	mock.ExpectDel("stats:1234:balance", "stats:1234:income").SetVal(2)

	repo := NewCachingTransactionRepository(rdb, 0, &mockTransactionRepository{}, "")

	id, err := repo.Save(context.Background(), &entity.Transaction{UserID: 1234})

	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCachingTransactionRepository_FailedWriteKeepsCache は書き込み失敗時にキャッシュを変更しないことを検証します。
func TestCachingTransactionRepository_FailedWriteKeepsCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	saveErr := errors.New("constraint")
	inner := &mockTransactionRepository{
		saveFn: func(context.Context, *entity.Transaction) (int64, error) { return 0, saveErr },
	}
	repo := NewCachingTransactionRepository(rdb, 0, inner, "")

	_, err := repo.Save(context.Background(), &entity.Transaction{UserID: 1234})

	assert.ErrorIs(t, err, saveErr)
	assert.NoError(t, mock.ExpectationsWereMet(), "no redis command expected")
}

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return client, mr
}

// TestCachingTransactionRepository_UpdateMovesOwner は所有者が変わる更新で新旧両方のキャッシュが削除されることを検証します。
func TestCachingTransactionRepository_UpdateMovesOwner(t *testing.T) {
	rdb, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("stats:1:balance", "5"))
	require.NoError(t, mr.Set("stats:2:balance", "7"))
	require.NoError(t, mr.Set("stats:3:balance", "9"))

	inner := &mockTransactionRepository{
		findByIDFn: func(_ context.Context, id int64) (*entity.Transaction, error) {
			return &entity.Transaction{ID: id, UserID: 1}, nil
		},
	}
	repo := NewCachingTransactionRepository(rdb, 0, inner, "")

	require.NoError(t, repo.Update(context.Background(), &entity.Transaction{ID: 10, UserID: 2}))

	assert.False(t, mr.Exists("stats:1:balance"), "previous owner invalidated")
	assert.False(t, mr.Exists("stats:2:balance"), "new owner invalidated")
	assert.True(t, mr.Exists("stats:3:balance"), "unrelated user untouched")
}

// TestCachingTransactionRepository_DeleteUnknownOwner は所有者が取得できない削除で名前空間全体を破棄することを検証します。
func TestCachingTransactionRepository_DeleteUnknownOwner(t *testing.T) {
	rdb, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("stats:1:balance", "5"))
	require.NoError(t, mr.Set("stats:2:income", "7"))
	require.NoError(t, mr.Set("other:key", "x"))

	repo := NewCachingTransactionRepository(rdb, 0, &mockTransactionRepository{}, "")

	require.NoError(t, repo.DeleteByID(context.Background(), 10))

	assert.False(t, mr.Exists("stats:1:balance"))
	assert.False(t, mr.Exists("stats:2:income"))
	assert.True(t, mr.Exists("other:key"), "keys outside the namespace survive")
}

// TestCachingTransactionRepository_RoundTrip はキャッシュ済みの集計が保存後に再計算されることを検証します。
func TestCachingTransactionRepository_RoundTrip(t *testing.T) {
	rdb, mr := setupTestRedis(t)

	balance := decimal.NewFromInt(48800)
	inner := &mockTransactionRepository{
		balanceFn: func(context.Context, int64) (decimal.Decimal, error) { return balance, nil },
	}
	repo := NewCachingTransactionRepository(rdb, time.Minute, inner, "")
	ctx := context.Background()

	_, err := repo.GetBalanceByUserID(ctx, 1234)
	require.NoError(t, err)
	_, err = repo.GetBalanceByUserID(ctx, 1234)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.balanceCalls, "second read served from redis")
	assert.Equal(t, time.Minute, mr.TTL("stats:1234:balance"))

	balance = decimal.NewFromInt(47600)
	_, err = repo.Save(ctx, &entity.Transaction{UserID: 1234})
	require.NoError(t, err)

	got, err := repo.GetBalanceByUserID(ctx, 1234)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(47600).Equal(got))
	assert.Equal(t, 2, inner.balanceCalls)
}
