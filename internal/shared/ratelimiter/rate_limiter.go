// Package ratelimiter は、クライアント単位で操作の頻度を制限します。
package ratelimiter

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiterは、キー（クライアントIPなど）ごとにトークンバケットで頻度を制限します。
type RateLimiter struct {
	limit    int           // interval あたりの上限
	interval time.Duration // どの単位で補充するか
	idleTTL  time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiterは新しいRateLimiterのインスタンスを生成します。
// limit が0以下の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		idleTTL:  10 * interval,
		buckets:  make(map[string]*bucket),
		now:      time.Now,
	}
}

// Allowは key の呼び出しが上限内であれば true を返します。
func (rl *RateLimiter) Allow(key string) bool {
	if rl == nil || rl.limit <= 0 {
		return true
	}
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		rl.evict(now)
		every := rate.Every(rl.interval / time.Duration(rl.limit))
		b = &bucket{lim: rate.NewLimiter(every, rl.limit)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	return b.lim.AllowN(now, 1)
}

// evict は idleTTL を超えて使われていないバケットを捨てます。
func (rl *RateLimiter) evict(now time.Time) {
	for k, b := range rl.buckets {
		if now.Sub(b.lastSeen) > rl.idleTTL {
			delete(rl.buckets, k)
		}
	}
}

// Middlewareはクライアント IP ごとに rl を適用し、超過時は429を返します。
func Middleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.Header("Retry-After", retryAfter(rl))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

func retryAfter(rl *RateLimiter) string {
	secs := int(rl.interval / time.Duration(rl.limit) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
