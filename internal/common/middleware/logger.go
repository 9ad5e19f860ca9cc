package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

// ============================================================
// Logger Middleware
// ============================================================

// RequestID tags every request with an X-Request-ID, reusing the caller's.
func RequestID() fiber.Handler {
	return requestid.New()
}

// Logger writes one access line per request, after RequestID.
func Logger() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} | rid=${respHeader:X-Request-ID} | ${bytesSent}B\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}
