package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v3"
)

const apiKeyHeader = "X-API-Key"

// AuthMiddleware guards the API with the static shared-secret key from
// configuration.
type AuthMiddleware struct {
	apiKey string
}

func NewAuthMiddleware(apiKey string) *AuthMiddleware {
	return &AuthMiddleware{apiKey: apiKey}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		provided := c.Get(apiKeyHeader)
		if m.apiKey == "" || !equalKeys(provided, m.apiKey) {
			return NewAppError(fiber.StatusUnauthorized,
				"Unauthorized: valid API key required in X-API-Key header", nil, nil)
		}
		return c.Next()
	}
}

func equalKeys(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
