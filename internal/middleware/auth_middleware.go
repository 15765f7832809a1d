package middleware

import (
	"log"
	"strings"

	"tugas/internal/models"
	"tugas/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthRequired for downstream handlers.
const (
	UserKey  = "auth_user"
	TokenKey = "auth_token"
)

// AuthRequired is a Fiber middleware that validates the bearer token and
// resolves it to a user. The token must be well-formed, unexpired AND still
// recorded for that user; otherwise the request is rejected with 401.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		tokenString := parts[1]

		user, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Please authenticate",
			})
		}

		// Store the resolved user and the presented token for the handlers.
		c.Locals(UserKey, user)
		c.Locals(TokenKey, tokenString)

		return c.Next()
	}
}

// CurrentUser returns the user attached by AuthRequired.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(UserKey).(*models.User)
	return user
}

// CurrentToken returns the token string attached by AuthRequired.
func CurrentToken(c *fiber.Ctx) string {
	token, _ := c.Locals(TokenKey).(string)
	return token
}
