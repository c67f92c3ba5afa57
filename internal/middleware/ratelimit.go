package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/config"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/metrics"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/response"
)

// Limiter decides whether one more request from key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit returns a Gin middleware that rate-limits requests by client IP.
// Limiter errors let the request through and are logged.
func RateLimit(limiter Limiter, log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "rate_limit").Logger()
	return func(c *gin.Context) {
		ok, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn().Err(err).Str("ip", c.ClientIP()).Msg("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if !ok {
			metrics.RateLimited.Inc()
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}

// MemoryLimiter implements a simple per-IP token bucket in process memory.
type MemoryLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int           // Tokens per interval
	interval time.Duration // Refill interval
	now      func() time.Time
}

type visitor struct {
	tokens   int
	lastSeen time.Time
}

// NewMemoryLimiter creates a MemoryLimiter (e.g., 30 requests per minute).
// Stale visitors are swept every minute until ctx is done.
func NewMemoryLimiter(ctx context.Context, rate int, interval time.Duration) *MemoryLimiter {
	rl := &MemoryLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		interval: interval,
		now:      time.Now,
	}

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.cleanup()
			}
		}
	}()

	return rl
}

// Allow implements Limiter.
func (rl *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, exists := rl.visitors[key]
	if !exists {
		v = &visitor{tokens: rl.rate, lastSeen: now}
		rl.visitors[key] = v
	}

	// Refill tokens based on elapsed time.
	refill := int(now.Sub(v.lastSeen)/rl.interval) * rl.rate
	if refill > 0 {
		v.tokens += refill
		if v.tokens > rl.rate {
			v.tokens = rl.rate
		}
		v.lastSeen = now
	}

	if v.tokens <= 0 {
		return false, nil
	}
	v.tokens--
	return true, nil
}

func (rl *MemoryLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if rl.now().Sub(v.lastSeen) > 3*rl.interval {
			delete(rl.visitors, ip)
		}
	}
}

// RedisLimiter is a fixed-window counter shared by every instance.
type RedisLimiter struct {
	rdb    *redis.Client
	rate   int
	window time.Duration
	now    func() time.Time
}

// NewRedisLimiter creates a RedisLimiter allowing rate requests per window.
func NewRedisLimiter(rdb *redis.Client, rate int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, rate: rate, window: window, now: time.Now}
}

// Allow implements Limiter.
func (rl *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := config.CacheKey.AuthRateLimitKey(key, rl.window, rl.now())

	pipe := rl.rdb.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(rl.rate), nil
}
