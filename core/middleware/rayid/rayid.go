package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the request id back to the caller.
const Header = "X-Ray-Id"

// New returns a middleware that assigns a unique ray id to every request.
// An id supplied by the caller is kept so retries can be correlated.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Locals("ray_id", rid)
		c.Set(Header, rid)

		return c.Next()
	}
}
