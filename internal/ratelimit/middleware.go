package ratelimit

import (
	"fmt"

	"codeberg.org/codelens/server/internal/errors"
	"codeberg.org/codelens/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// throttles clients by IP in front of the analysis endpoints
type Limiter struct {
	config  *Config
	limiter *limiter.Limiter
}

// New parses config.Rate and backs the limiter with an in-process store.
func New(config *Config) (*Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(config.Rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", config.Rate, err)
	}

	return &Limiter{
		config:  config,
		limiter: limiter.New(memory.NewStore(), rate),
	}, nil
}

// returns a Gin middleware enforcing the configured rate
func (l *Limiter) Middleware() gin.HandlerFunc {
	if !l.config.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	limit := mgin.NewMiddleware(l.limiter,
		mgin.WithLimitReachedHandler(handleLimitReached),
		mgin.WithErrorHandler(handleStoreError),
	)

	return func(c *gin.Context) {
		if l.config.IsExemptPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		limit(c)
	}
}

func handleLimitReached(c *gin.Context) {
	logger.Warn("rate limit exceeded", "ip", c.ClientIP(), "path", c.Request.URL.Path)

	errors.TooManyRequests(c, "too many requests. please slow down.")
}

func handleStoreError(c *gin.Context, err error) {
	errors.InternalError(c, "rate limiter unavailable", err)
}
