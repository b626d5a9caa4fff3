package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/remixrite/remix-ledger/internal/api/shared/constants"
	apierrors "github.com/remixrite/remix-ledger/internal/api/shared/errors"
	"github.com/remixrite/remix-ledger/internal/logger"
)

// RequestID tags every request with an id, reusing the caller's X-Request-ID when present.
// The id is carried in the request context so service logs can be correlated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.REQUEST_ID_HEADER)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Header(constants.REQUEST_ID_HEADER, requestID)
		ctx := logger.WithPipelineInfo(c.Request.Context(), logger.PipelineInfo{RequestID: requestID})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// Logger logs one line per request. 5xx responses are logged as errors and 4xx as warnings;
// health probes are only logged at debug level.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if caller := AuthCaller(c); caller != "" {
			fields = append(fields, zap.String("caller", caller))
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.ErrorCtx(ctx, fmt.Errorf("request failed with status %d", status), fields...)
		case status >= http.StatusBadRequest:
			logger.WarnCtx(ctx, "API request rejected", fields...)
		case c.FullPath() == constants.HEALTH_PATH:
			logger.DebugCtx(ctx, "API request", fields...)
		default:
			logger.InfoCtx(ctx, "API request", fields...)
		}
	}
}

// Recovery turns a panic into a 500 with the standard error body
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorCtx(c.Request.Context(), fmt.Errorf("panic recovered: %v", r),
					zap.String("route", c.FullPath()),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierrors.ErrorResponse{
					Error: apierrors.NewInternalError("Internal server error"),
				})
			}
		}()
		c.Next()
	}
}
