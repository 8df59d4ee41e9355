package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mange/backend/internal/service"
)

const ctxUserKey = "auth_user"

// RequireToken checks the Authorization bearer value against the stored
// one-per-user tokens and stashes the user in locals.
func RequireToken(svcs *service.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		value := strings.TrimPrefix(header, "Bearer ")
		if value == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		user, err := svcs.Auth.Authenticate(c.Context(), value)
		if err != nil {
			return fail(c, err)
		}
		c.Locals(ctxUserKey, user)
		return c.Next()
	}
}
