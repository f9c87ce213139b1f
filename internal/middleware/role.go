package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireRoles guards a route to the given roles. It reads the role
// local set by AttachJWTLocals, so it must come after it in the chain.
func RequireRoles(allowed ...string) fiber.Handler {
	allowedSet := make(map[string]bool, len(allowed))
	for _, r := range allowed {
		allowedSet[strings.ToLower(r)] = true
	}

	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || role == "" {
			return fiber.ErrUnauthorized
		}
		if !allowedSet[role] {
			return fiber.NewError(fiber.StatusForbidden, "forbidden: insufficient role")
		}
		return c.Next()
	}
}
