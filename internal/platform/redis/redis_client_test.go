package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "")
	t.Setenv("REDIS_PASSWORD", "pw")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("STATS_CACHE_TTL", "90s")

	cfg := LoadConfigFromEnv()

	assert.Equal(t, "cache:6379", cfg.Addr())
	assert.Equal(t, "pw", cfg.Password)
	assert.Equal(t, 2, cfg.DB)
	assert.Equal(t, 90*time.Second, cfg.StatsTTL)
}

func TestNewRedisClient(t *testing.T) {
	t.Run("disabled without host", func(t *testing.T) {
		rdb, err := NewRedisClient(context.Background(), Config{})
		assert.NoError(t, err)
		assert.Nil(t, rdb)
	})

	t.Run("connects", func(t *testing.T) {
		mr := miniredis.RunT(t)
		host, port, _ := splitAddr(mr.Addr())

		rdb, err := NewRedisClient(context.Background(), Config{Host: host, Port: port})
		require.NoError(t, err)
		require.NotNil(t, rdb)
		_ = rdb.Close()
	})

	t.Run("ping failure", func(t *testing.T) {
		mr := miniredis.RunT(t)
		host, port, _ := splitAddr(mr.Addr())
		mr.Close()

		rdb, err := NewRedisClient(context.Background(), Config{Host: host, Port: port})
		assert.Error(t, err)
		assert.Nil(t, rdb)
	})
}

func splitAddr(addr string) (string, string, bool) {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[:i], addr[i+1:], true
		}
	}
	return addr, "", false
}
