package auth

import (
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cosmicwatch/neo-backend/database"
	"github.com/cosmicwatch/neo-backend/model"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// sendTokenResponse signs a session token, sets the httpOnly cookie and
// writes the auth envelope.
func sendTokenResponse(c *fiber.Ctx, statusCode int, user *model.User) error {
	token, err := GenerateJWT(user.Key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create session",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(tokenLifetime),
		HTTPOnly: true,
		Secure:   database.GetEnvDefault("APP_ENV", "development") == "production",
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return c.Status(statusCode).JSON(model.AuthResponse{
		Success: true,
		Token:   token,
		User:    user.Public(),
	})
}

// Signup handles public user registration.
func Signup(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		req.Name = strings.TrimSpace(req.Name)
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		if len(req.Name) < 2 || len(req.Name) > 50 {
			return badRequest(c, "Name must be between 2 and 50 characters")
		}
		if !emailPattern.MatchString(req.Email) {
			return badRequest(c, "Please provide a valid email")
		}
		if len(req.Password) < 6 {
			return badRequest(c, "Password must be at least 6 characters long")
		}

		existing, err := FindUserByEmail(c.Context(), db, req.Email)
		if err != nil {
			return serverError(c, "Failed to create account")
		}
		if existing != nil {
			return badRequest(c, "User with this email already exists")
		}

		hash, err := HashPassword(req.Password)
		if err != nil {
			return serverError(c, "Failed to create account")
		}

		user := model.NewUser(req.Name, req.Email, hash)
		if err := CreateUser(c.Context(), db, user); err != nil {
			return serverError(c, "Failed to create account")
		}

		return sendTokenResponse(c, fiber.StatusCreated, user)
	}
}

// Login authenticates a user by email and password.
func Login(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if req.Email == "" || req.Password == "" {
			return badRequest(c, "Email and password are required")
		}

		user, err := FindUserByEmail(c.Context(), db, req.Email)
		if err != nil {
			return serverError(c, "Login failed")
		}
		if user == nil || !CheckPasswordHash(req.Password, user.PasswordHash) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid credentials",
			})
		}

		return sendTokenResponse(c, fiber.StatusOK, user)
	}
}

// Me returns the authenticated user's profile.
func Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		return c.JSON(model.UserResponse{Success: true, User: user.Public()})
	}
}

// UpdatePreferences merges the submitted interests and preferences into the
// authenticated user's profile. Absent fields are left untouched.
func UpdatePreferences(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Interests   *[]string `json:"interests"`
			Preferences *struct {
				RiskThreshold        *string `json:"riskThreshold"`
				NotificationsEnabled *bool   `json:"notificationsEnabled"`
			} `json:"preferences"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		user := CurrentUser(c)
		if req.Interests != nil {
			user.Interests = *req.Interests
		}
		if req.Preferences != nil {
			if req.Preferences.RiskThreshold != nil {
				threshold := *req.Preferences.RiskThreshold
				switch threshold {
				case model.RiskLevelLow, model.RiskLevelMedium, model.RiskLevelHigh, "all":
					user.Preferences.RiskThreshold = threshold
				default:
					return badRequest(c, "riskThreshold must be one of low, medium, high, all")
				}
			}
			if req.Preferences.NotificationsEnabled != nil {
				user.Preferences.NotificationsEnabled = *req.Preferences.NotificationsEnabled
			}
		}

		if err := UpdateUser(c.Context(), db, user); err != nil {
			return serverError(c, "Failed to update preferences")
		}

		return c.JSON(model.UserResponse{Success: true, User: user.Public()})
	}
}

// Logout expires the session cookie.
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     "token",
			Value:    "none",
			Expires:  time.Now().Add(time.Second),
			HTTPOnly: true,
		})
		return c.JSON(model.MessageResponse{Success: true, Message: "Logged out successfully"})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func serverError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
