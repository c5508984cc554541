package middleware

import (
	"crypto/subtle"

	"tokenlaunch-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const adminKeyHeader = "X-Admin-Key"

// RequireAdminKey guards moderation routes. The key comes from config;
// an empty configured key disables the routes entirely.
func RequireAdminKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key == "" {
			return response.Error(c, "Admin routes disabled", fiber.StatusForbidden, nil)
		}
		got := c.Get(adminKeyHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}
