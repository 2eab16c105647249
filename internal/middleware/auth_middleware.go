package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventos-backend/internal/models"
)

const identityKey = "identity"

// Authenticator resolves a bearer token. service.AuthService implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
}

// AuthMiddleware requires a valid, unrevoked bearer token and stores the caller's identity.
// Failures are returned to the app's error handler.
func AuthMiddleware(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return models.ErrAuthenticationRequired
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			return models.ErrAuthenticationRequired
		}

		identity, err := auth.Authenticate(c.UserContext(), tokenString)
		if err != nil {
			return err
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// Identity returns the caller stored by AuthMiddleware, or nil for anonymous requests.
func Identity(c *fiber.Ctx) *models.Identity {
	identity, _ := c.Locals(identityKey).(*models.Identity)
	return identity
}
