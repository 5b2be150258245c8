package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request ID between services.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is where the ID is stashed in Fiber's locals so the
	// logger and error responses can pick it up.
	RequestIDLocalKey = "request_id"
)

// RequestID propagates an incoming X-Request-ID or mints a fresh UUID when
// the client sent none. The ID is stored in locals and echoed on the
// response header so every log line and error body can be correlated.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}
