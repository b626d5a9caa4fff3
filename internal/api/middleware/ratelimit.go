package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apierrors "github.com/remixrite/remix-ledger/internal/api/shared/errors"
	"github.com/remixrite/remix-ledger/internal/logger"
)

// RateLimitConfig bounds how often one caller may hit a route
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate; zero disables limiting
	RequestsPerSecond float64
	Burst             int
	// IdleTTL is how long an unused limiter is kept
	IdleTTL time.Duration
}

type callerLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet keeps one token bucket per caller
type limiterSet struct {
	cfg      RateLimitConfig
	mu       sync.Mutex
	limiters map[string]*callerLimiter
	lastGC   time.Time
}

func (s *limiterSet) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastGC) > s.cfg.IdleTTL {
		for k, l := range s.limiters {
			if now.Sub(l.lastSeen) > s.cfg.IdleTTL {
				delete(s.limiters, k)
			}
		}
		s.lastGC = now
	}

	l, ok := s.limiters[key]
	if !ok {
		l = &callerLimiter{limiter: rate.NewLimiter(rate.Limit(s.cfg.RequestsPerSecond), s.cfg.Burst)}
		s.limiters[key] = l
	}
	l.lastSeen = now
	return l.limiter
}

// RateLimit rejects callers exceeding their token bucket with 429.
// Authenticated callers are keyed by their AuthCaller identity, others by client IP, so it must run after Auth.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.RequestsPerSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 10 * time.Minute
	}

	set := &limiterSet{cfg: cfg, limiters: make(map[string]*callerLimiter), lastGC: time.Now()}

	return func(c *gin.Context) {
		key := AuthCaller(c)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}

		if !set.get(key, time.Now()).Allow() {
			logger.WarnCtx(c.Request.Context(), "Rate limit exceeded",
				zap.String("caller", key),
				zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierrors.ErrorResponse{
				Error: apierrors.NewRateLimitedError("Too many requests"),
			})
			return
		}

		c.Next()
	}
}
