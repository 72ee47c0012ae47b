package logger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GinLoggerKey is the gin context key holding the request-scoped logger.
const GinLoggerKey = "request_logger"

// AccessLogConfig controls the access-log middleware.
type AccessLogConfig struct {
	// QuietPaths are logged at debug level so health probes do not drown
	// out real traffic.
	QuietPaths []string
}

// AccessLog returns the access-log middleware with the default
// configuration.
func AccessLog(base *zap.Logger) gin.HandlerFunc {
	return AccessLogWithConfig(base, AccessLogConfig{
		QuietPaths: []string{"/health", "/api/v1/health"},
	})
}

// AccessLogWithConfig attaches a request-scoped logger to the gin context
// and writes one access line per request after the handler chain finishes.
// Fields resolved by inner middleware, such as the tenant identifier, are
// picked up once the chain has run.
func AccessLogWithConfig(base *zap.Logger, cfg AccessLogConfig) gin.HandlerFunc {
	quiet := make(map[string]struct{}, len(cfg.QuietPaths))
	for _, p := range cfg.QuietPaths {
		quiet[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		reqLogger := base.With(
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
		)
		c.Set(GinLoggerKey, reqLogger)

		c.Next()

		status := c.Writer.Status()
		fields := accessFields(c, status, time.Since(start))

		_, isQuiet := quiet[path]
		switch {
		case status >= http.StatusInternalServerError:
			reqLogger.Error("request completed", fields...)
		case status >= http.StatusBadRequest:
			reqLogger.Warn("request completed", fields...)
		case isQuiet:
			reqLogger.Debug("request completed", fields...)
		default:
			reqLogger.Info("request completed", fields...)
		}
	}
}

func accessFields(c *gin.Context, status int, elapsed time.Duration) []zap.Field {
	fields := []zap.Field{
		zap.Int("status", status),
		zap.Duration("elapsed", elapsed),
		zap.String("client_ip", c.ClientIP()),
		zap.Int("response_bytes", c.Writer.Size()),
	}
	if tenantID := c.GetString("tenant_id"); tenantID != "" {
		fields = append(fields, zap.String("tenant_id", tenantID))
	}
	if query := c.Request.URL.RawQuery; query != "" {
		fields = append(fields, zap.String("query", query))
	}
	if len(c.Errors) > 0 {
		fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
	}
	return fields
}

// Recovery converts panics into a 500 response and logs the stack.
func Recovery(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			base.Error("panic recovered",
				zap.Any("panic", r),
				zap.String("request_id", c.GetString("request_id")),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Stack("stack"),
			)
			c.AbortWithStatus(http.StatusInternalServerError)
		}()
		c.Next()
	}
}

// RequestLogger returns the request-scoped logger attached by AccessLog,
// or a no-op logger when none is present.
func RequestLogger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(GinLoggerKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}
