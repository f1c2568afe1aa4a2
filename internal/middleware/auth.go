// Package middleware provides authentication, logging, and rate limiting
// middleware for the application.
package middleware

import (
	"context"

	"devconnector/internal/token"

	"github.com/gofiber/fiber/v2"
)

// TokenHeader is the request header carrying the signed credential.
// The API uses a bare custom header, not an Authorization Bearer prefix.
const TokenHeader = "x-auth-token"

// AuthRequired returns a middleware enforcing authentication for private
// routes. On success the authenticated user id (hex) is stored in
// c.Locals("userID") and the request context for downstream logging.
func AuthRequired(codec *token.Codec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		t := c.Get(TokenHeader)
		if t == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"msg": "no token, authorization denied",
			})
		}

		userID, err := codec.Verify(t)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"msg": "token is not valid",
			})
		}

		c.Locals("userID", userID)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))
		return c.Next()
	}
}
