package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yuksekolah/backend/pkg/redis"
	"yuksekolah/backend/pkg/response"
)

// RateLimit 基于 Redis 滑动窗口的限流中间件
// scope 区分不同端点的计数器，limit 为窗口内允许的最大请求数
// Redis 不可用时直接放行（限流是保护措施，不应成为单点故障）
func RateLimit(rdb *redis.Client, logger *zap.Logger, scope string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", scope, c.ClientIP())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("限流检查失败，放行请求", zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, "Terlalu banyak permintaan. Silakan coba lagi nanti.")
			c.Abort()
			return
		}

		c.Next()
	}
}
