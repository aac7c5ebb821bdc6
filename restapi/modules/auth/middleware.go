package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cosmicwatch/neo-backend/database"
	"github.com/cosmicwatch/neo-backend/model"
)

// Locals keys set by the middleware.
const (
	LocalUser    = "user"
	LocalUserKey = "user_key"
)

// extractToken reads the session token from the auth cookie or, failing
// that, from a Bearer authorization header.
func extractToken(c *fiber.Ctx) string {
	if token := c.Cookies("token"); token != "" {
		return token
	}
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// Protect middleware validates the session token and loads the user. Guests
// are blocked with 401.
func Protect(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Not authorized to access this route",
			})
		}

		userKey, err := ValidateJWT(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Token is invalid or has expired",
			})
		}

		user, err := FindUserByKey(c.Context(), db, userKey)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "User no longer exists",
			})
		}

		c.Locals(LocalUser, user)
		c.Locals(LocalUserKey, user.Key)
		return c.Next()
	}
}

// OptionalAuth identifies the user when a valid token is present but never
// blocks guests. Used by the GraphQL endpoint.
func OptionalAuth(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Next()
		}
		userKey, err := ValidateJWT(token)
		if err != nil {
			return c.Next()
		}
		if user, err := FindUserByKey(c.Context(), db, userKey); err == nil {
			c.Locals(LocalUser, user)
			c.Locals(LocalUserKey, user.Key)
		}
		return c.Next()
	}
}

// CurrentUser returns the user loaded by Protect, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(LocalUser).(*model.User)
	return user
}
