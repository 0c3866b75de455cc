package middleware

import (
	"github.com/haierkeys/portfolio-dash/pkg/app"
	"github.com/haierkeys/portfolio-dash/pkg/code"
	"github.com/haierkeys/portfolio-dash/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimiter 创建限流中间件，桶内无可用令牌时直接返回 429
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bucket, ok := l.GetBucket(l.Key(c)); ok {
			if bucket.TakeAvailable(1) == 0 {
				app.NewResponse(c).ToResponse(code.ErrorTooManyRequests)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
