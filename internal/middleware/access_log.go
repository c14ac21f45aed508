package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-recomendacao/internal/logger"
)

// AccessLog registra uma linha estruturada por requisição. Probes de saúde são logadas em debug.
func AccessLog(log *logger.Logger) gin.HandlerFunc {
	quiet := map[string]bool{"/liveness": true, "/readiness": true, "/metrics": true}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		kv := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"request_id", GetRequestID(c),
		}
		if userID, ok := GetUserID(c); ok {
			kv = append(kv, "user_id", userID)
		}
		if len(c.Errors) > 0 {
			kv = append(kv, "errors", c.Errors.String())
		}

		switch {
		case c.Writer.Status() >= 500:
			log.Error("http request", kv...)
		case quiet[c.Request.URL.Path]:
			log.Debug("http request", kv...)
		default:
			log.Info("http request", kv...)
		}
	}
}
