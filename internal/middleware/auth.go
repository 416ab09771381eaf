package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/itemdesk/internal/services"
)

// TokenVerifier checks a bearer token
type TokenVerifier interface {
	Verify(token string) (*services.TokenClaims, error)
}

// WriteAuth requires a valid bearer token on every method except GET, HEAD
// and OPTIONS. A nil verifier leaves the routes open.
func WriteAuth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if verifier == nil {
			return c.Next()
		}

		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}

		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "missing authorization header",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "invalid authorization format",
			})
		}

		claims, err := verifier.Verify(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "invalid or expired token",
			})
		}

		c.Locals("token_subject", claims.Subject)
		return c.Next()
	}
}

// GetTokenSubject returns the subject of the token that authorised the request
func GetTokenSubject(c *fiber.Ctx) string {
	if sub, ok := c.Locals("token_subject").(string); ok {
		return sub
	}
	return ""
}
