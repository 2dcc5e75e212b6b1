package middleware

import (
	"automind-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const userLocal = "user"

// RequireAuth gates a route group on a logged-in session. The session
// middleware has already resolved the cookie; no user in Locals means no
// valid session.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals(userLocal)
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		c.Locals("auth", user)
		return c.Next()
	}
}

// GetUser returns the session user map, nil when nobody is logged in.
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}
