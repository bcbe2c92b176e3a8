package logger

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// echoKey is where request-scoped loggers live in the echo context. Handlers
// never touch it directly; they go through Attach and FromEcho.
const echoKey = "request_logger"

// Attach stores a request-scoped logger in the echo context so every
// subsequent handler and middleware on the request logs with the same fields.
func Attach(c echo.Context, l *zap.Logger) {
	c.Set(echoKey, l)
}

// FromEcho returns the request-scoped logger, or the global one when no
// middleware attached any.
func FromEcho(c echo.Context) *zap.Logger {
	if l, ok := c.Get(echoKey).(*zap.Logger); ok {
		return l
	}
	return GetLogger()
}
