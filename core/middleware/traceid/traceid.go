// Package traceid assigns a unique trace id to every request.
package traceid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"guild-ledger/core/logger"
)

// HeaderName is the response header echoing the trace id.
const HeaderName = "X-Trace-Id"

// New returns a middleware that stores a fresh trace id in the request
// locals (under logger.TraceKey) and echoes it in the response headers.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := uuid.NewString()
		c.Locals(logger.TraceKey, id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}
