package middleware

import (
	"strings"

	"automind-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CORSConfig controls which browser origins may call the API with
// credentials. AllowedSuffix matches the deployed frontend domain;
// DevPassword lets a local frontend through via the dev-password header.
type CORSConfig struct {
	AllowedSuffix string
	DevPassword   string
}

// CORS allows same-origin traffic, the configured frontend domain, and
// dev-password-bearing requests. Everything else gets the standard 403.
func CORS(cfg CORSConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if origin == "" {
			// Same-origin requests and non-browser clients carry no
			// Origin header; the session cookie still gates them.
			return c.Next()
		}

		if c.Method() == fiber.MethodOptions && isLocalhost(origin) {
			allowOrigin(c, origin)
			return c.SendStatus(fiber.StatusNoContent)
		}

		switch {
		case cfg.AllowedSuffix != "" && strings.HasSuffix(strings.ToLower(origin), strings.ToLower(cfg.AllowedSuffix)):
			allowOrigin(c, origin)
			return c.Next()
		case cfg.DevPassword != "" && c.Get("dev-password") == cfg.DevPassword:
			allowOrigin(c, origin)
			return c.Next()
		}
		return response.Error(c, "Not allowed by CORS", fiber.StatusForbidden, nil)
	}
}

func isLocalhost(origin string) bool {
	return strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:")
}

func allowOrigin(c *fiber.Ctx, origin string) {
	c.Set("Access-Control-Allow-Origin", origin)
	c.Set("Access-Control-Allow-Credentials", "true")
	c.Set("Access-Control-Allow-Headers", "Content-Type, dev-password")
}
