package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"investwise/internal/logger"
)

const pipelineKeyHeader = "X-API-Key"

// PipelineAuthMiddleware guards batch endpoints with a shared X-API-Key.
// Several keys may be active at once so a key can be rotated without
// downtime; empty entries are ignored.
func PipelineAuthMiddleware(apiKeys ...string) gin.HandlerFunc {
	var keys [][]byte
	for _, k := range apiKeys {
		if k != "" {
			keys = append(keys, []byte(k))
		}
	}

	return func(c *gin.Context) {
		if len(keys) == 0 {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				gin.H{"error": gin.H{"code": "PIPELINE_NOT_CONFIGURED", "message": "Pipeline endpoints are not configured"}})
			return
		}

		presented := []byte(c.GetHeader(pipelineKeyHeader))
		matched := 0
		for _, k := range keys {
			matched |= subtle.ConstantTimeCompare(presented, k)
		}
		if matched != 1 {
			logger.Get().Warnw("pipeline request rejected",
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP(),
				"request_id", RequestID(c),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": gin.H{"code": "INVALID_API_KEY", "message": "Invalid or missing API key"}})
			return
		}
		c.Next()
	}
}
