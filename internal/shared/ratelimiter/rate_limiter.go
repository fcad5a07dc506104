// Package ratelimiter はクライアントごとのフォーム送信頻度を制限します。
package ratelimiter

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiterは、キー（クライアントIPなど）ごとに操作の頻度を制限します。
// 各キーはトークンバケット（rate.Limiter）を持ち、interval あたり limit 回まで許可します。
type RateLimiter struct {
	limit    int           // interval あたりの上限
	interval time.Duration // 上限を数える単位
	now      func() time.Time

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewRateLimiterは新しいRateLimiterのインスタンスを生成します。limitが0以下なら制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		now:      time.Now,
		buckets:  make(map[string]*rate.Limiter),
	}
}

func (rl *RateLimiter) bucket(key string) *rate.Limiter {
	b, ok := rl.buckets[key]
	if !ok {
		b = rate.NewLimiter(rate.Every(rl.interval/time.Duration(rl.limit)), rl.limit)
		rl.buckets[key] = b
	}
	return b
}

// Allow はkeyに対する1回の操作を記録し、上限内かどうかを返します。
// 上限を超えた場合は次に許可されるまでの時間を返します。拒否された操作はトークンを消費しません。
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	if rl.limit <= 0 {
		return true, 0
	}
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	r := rl.bucket(key).ReserveN(now, 1)
	if !r.OK() {
		return false, rl.interval
	}
	if d := r.DelayFrom(now); d > 0 {
		r.CancelAt(now)
		return false, d
	}
	return true, 0
}

// Prune はバケットが満杯に戻った（＝しばらく使われていない）キーを削除します。
func (rl *RateLimiter) Prune() {
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for k, b := range rl.buckets {
		if b.TokensAt(now) >= float64(b.Burst()) {
			delete(rl.buckets, k)
		}
	}
}

// Middleware はクライアントIPごとに上限を超えたリクエストを429で拒否します。
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retry := rl.Allow(c.ClientIP())
		if !ok {
			secs := int(retry.Round(time.Second) / time.Second)
			if secs < 1 {
				secs = 1
			}
			slog.Warn("rate limit hit", "remote_addr", c.ClientIP(), "limit", rl.limit, "retry_after", secs)
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many attempts, please try again later",
				"code":  "TooManyRequests",
			})
			return
		}
		c.Next()
	}
}
