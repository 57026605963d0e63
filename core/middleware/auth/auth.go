package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// Config holds the auth middleware configuration.
type Config struct {
	// ApiKey is the shared secret expected in the Authorization header.
	// An empty key disables the guard (local development).
	ApiKey string
}

// New returns a middleware enforcing the API key on every request.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" {
			return c.Next()
		}

		provided := c.Get(fiber.HeaderAuthorization)
		if len(provided) > 7 && provided[:7] == "Bearer " {
			provided = provided[7:]
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(cfg.ApiKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid_api_key",
			})
		}

		return c.Next()
	}
}
