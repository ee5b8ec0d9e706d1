package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tuser579/CityFix/internal/pkg/fbauth"
)

// KeyVerifiedEmail is the fiber.Ctx Locals key holding the email of the
// verified caller identity.
const KeyVerifiedEmail = "verified_email"

// RequireAuth returns a middleware that verifies the bearer token with the
// injected verifier and stores the verified email in Locals. Requests without
// a valid token get a JSON 401.
func RequireAuth(verifier fbauth.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if header == "" {
			return unauthorized(c)
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[1] == "" {
			return unauthorized(c)
		}

		email, err := verifier.VerifyIDToken(c.UserContext(), parts[1])
		if err != nil {
			return unauthorized(c)
		}

		c.Locals(KeyVerifiedEmail, email)
		return c.Next()
	}
}

// VerifiedEmail returns the verified identity set by RequireAuth, or "".
func VerifiedEmail(c *fiber.Ctx) string {
	if email, ok := c.Locals(KeyVerifiedEmail).(string); ok {
		return email
	}
	return ""
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "unauthorized access",
	})
}
