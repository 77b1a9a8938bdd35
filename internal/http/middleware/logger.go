package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerLocalKey is the key under which the request-scoped logger is stored in Fiber locals.
const LoggerLocalKey = "logger"

// statusOf returns the status the client will see, including errors the
// ErrorHandler has not rendered yet.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// Logger writes one structured entry per request and exposes a request-scoped logger
// (carrying request_id) to handlers through LoggerFrom.
// Entries for 5xx responses are logged at error level, 4xx at warn.
func Logger(base *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		reqLog := base.With(zap.String("request_id", rid))
		c.Locals(LoggerLocalKey, reqLog)

		err := c.Next()

		status := statusOf(c, err)
		level := zapcore.InfoLevel
		switch {
		case status >= fiber.StatusInternalServerError:
			level = zapcore.ErrorLevel
		case status >= fiber.StatusBadRequest:
			level = zapcore.WarnLevel
		}

		fields := []zap.Field{
			zap.String("method", utils.CopyString(c.Method())),
			zap.String("path", utils.CopyString(c.Path())),
			zap.Int("status", status),
			zap.Float64("latency", float64(time.Since(start).Microseconds())/1000),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		if ce := reqLog.Check(level, "http_request"); ce != nil {
			ce.Write(fields...)
		}

		return err
	}
}

// LoggerFrom returns the request-scoped logger, or a no-op logger outside the Logger middleware.
func LoggerFrom(c *fiber.Ctx) *zap.Logger {
	if l, ok := c.Locals(LoggerLocalKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
