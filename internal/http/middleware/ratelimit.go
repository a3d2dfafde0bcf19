package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	visitorTTL      = 3 * time.Minute
	cleanupInterval = time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit enforces a per-client token bucket keyed by client IP. Static
// asset paths are exempted by the router, not here.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	var (
		mu          sync.Mutex
		visitors    = make(map[string]*clientLimiter)
		lastCleanup time.Time
	)

	return func(c *gin.Context) {
		now := time.Now()
		key := c.ClientIP()

		mu.Lock()
		v, ok := visitors[key]
		if !ok {
			v = &clientLimiter{
				limiter:  rate.NewLimiter(rate.Limit(rps), burst),
				lastSeen: now,
			}
			visitors[key] = v
		} else {
			v.lastSeen = now
		}

		if lastCleanup.IsZero() || now.Sub(lastCleanup) > cleanupInterval {
			for k, entry := range visitors {
				if now.Sub(entry.lastSeen) > visitorTTL {
					delete(visitors, k)
				}
			}
			lastCleanup = now
		}
		mu.Unlock()

		if !v.limiter.AllowN(now, 1) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests"})
			return
		}

		c.Next()
	}
}
