package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/campusgrid/timetable-backend/internal/config"
	"github.com/campusgrid/timetable-backend/internal/response"
)

// RateLimiter counts requests per client in fixed Redis windows so limits
// hold across instances. When Redis is unreachable it falls back to an
// in-process token bucket.
type RateLimiter struct {
	rdb      *redis.Client
	bucket   string
	rate     int
	interval time.Duration
	log      zerolog.Logger

	mu       sync.Mutex
	visitors map[string]*visitor
}

type visitor struct {
	tokens   int
	lastSeen time.Time
}

// incrWindow increments a window counter and gives it a TTL whenever it has
// none, so a counter can never outlive its window.
var incrWindow = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// NewRateLimiter creates a RateLimiter allowing rate requests per interval.
// rdb may be nil to use only the in-process bucket. Intervals shorter than a
// second are raised to one second.
func NewRateLimiter(rdb *redis.Client, bucket string, rate int, interval time.Duration, log zerolog.Logger) *RateLimiter {
	if interval < time.Second {
		interval = time.Second
	}
	return &RateLimiter{
		rdb:      rdb,
		bucket:   bucket,
		rate:     rate,
		interval: interval,
		log:      log.With().Str("component", "rate_limiter").Str("bucket", bucket).Logger(),
		visitors: make(map[string]*visitor),
	}
}

// Middleware returns a Gin middleware that rate-limits requests by caller.
// Authenticated callers are keyed by user id, others by IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		client := c.ClientIP()
		if identity := GetIdentity(c); identity != nil {
			client = "user:" + identity.UserID
		}

		if !rl.allow(c, client) {
			c.Header("Retry-After", strconv.Itoa(int(rl.interval.Seconds())))
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(c *gin.Context, client string) bool {
	if rl.rdb != nil {
		ctx := c.Request.Context()
		key := config.CacheKey.RateLimitKey(rl.bucket, client)
		n, err := incrWindow.Run(ctx, rl.rdb, []string{key}, rl.interval.Milliseconds()).Int64()
		if err == nil {
			return n <= int64(rl.rate)
		}
		rl.log.Warn().Err(err).Msg("Redis rate limit unavailable, using local bucket")
	}
	return rl.allowLocal(client)
}

func (rl *RateLimiter) allowLocal(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v, exists := rl.visitors[client]
	if !exists {
		v = &visitor{tokens: rl.rate, lastSeen: now}
		rl.visitors[client] = v
	}

	// Refill whole intervals since the last refill.
	if refill := int(now.Sub(v.lastSeen)/rl.interval) * rl.rate; refill > 0 {
		v.tokens = min(v.tokens+refill, rl.rate)
		v.lastSeen = now
	}

	for key, other := range rl.visitors {
		if now.Sub(other.lastSeen) > 3*rl.interval {
			delete(rl.visitors, key)
		}
	}

	if v.tokens <= 0 {
		return false
	}
	v.tokens--
	return true
}
