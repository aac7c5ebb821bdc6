package watchlist

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cosmicwatch/neo-backend/database"
	"github.com/cosmicwatch/neo-backend/model"
	"github.com/cosmicwatch/neo-backend/restapi/modules/auth"
)

// GetWatchlist lists the authenticated user's saved asteroids, most recently
// added first.
func GetWatchlist(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)

		items, err := ListItems(c.Context(), db, user.Key)
		if err != nil {
			return serverError(c, "Failed to load watchlist")
		}

		return c.JSON(model.WatchlistResponse{
			Success:   true,
			Count:     len(items),
			Watchlist: items,
		})
	}
}

// AddToWatchlist saves an asteroid for the authenticated user. Each asteroid
// can appear at most once per user.
func AddToWatchlist(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			AsteroidID   string          `json:"asteroidId"`
			AsteroidName string          `json:"asteroidName"`
			AsteroidData json.RawMessage `json:"asteroidData"`
			Notes        string          `json:"notes"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if req.AsteroidID == "" {
			return badRequest(c, "asteroidId is required")
		}

		user := auth.CurrentUser(c)

		existing, err := FindByAsteroid(c.Context(), db, user.Key, req.AsteroidID)
		if err != nil {
			return serverError(c, "Failed to update watchlist")
		}
		if existing != nil {
			return badRequest(c, "Asteroid already in watchlist")
		}

		item := &model.WatchlistItem{
			UserID:       user.Key,
			AsteroidID:   req.AsteroidID,
			AsteroidName: req.AsteroidName,
			AsteroidData: req.AsteroidData,
			Notes:        req.Notes,
			AddedAt:      time.Now().UTC(),
		}
		if err := CreateItem(c.Context(), db, item); err != nil {
			return serverError(c, "Failed to update watchlist")
		}

		return c.Status(fiber.StatusCreated).JSON(model.WatchlistItemResponse{
			Success:       true,
			WatchlistItem: *item,
		})
	}
}

// UpdateWatchlistItem replaces the notes on one watchlist entry. Only the
// owner may modify an entry.
func UpdateWatchlistItem(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Notes string `json:"notes"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		user := auth.CurrentUser(c)

		item, err := FindByKey(c.Context(), db, c.Params("id"))
		if err != nil {
			return serverError(c, "Failed to update watchlist")
		}
		if item == nil {
			return notFound(c, "Watchlist item not found")
		}
		if item.UserID != user.Key {
			return forbidden(c, "Not authorized to modify this item")
		}

		item.Notes = req.Notes
		if err := UpdateItem(c.Context(), db, item); err != nil {
			return serverError(c, "Failed to update watchlist")
		}

		return c.JSON(model.WatchlistItemResponse{
			Success:       true,
			WatchlistItem: *item,
		})
	}
}

// RemoveFromWatchlist deletes one watchlist entry. Only the owner may remove
// an entry.
func RemoveFromWatchlist(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := auth.CurrentUser(c)

		item, err := FindByKey(c.Context(), db, c.Params("id"))
		if err != nil {
			return serverError(c, "Failed to update watchlist")
		}
		if item == nil {
			return notFound(c, "Watchlist item not found")
		}
		if item.UserID != user.Key {
			return forbidden(c, "Not authorized to modify this item")
		}

		if err := DeleteItem(c.Context(), db, item.Key); err != nil {
			return serverError(c, "Failed to update watchlist")
		}

		return c.JSON(model.MessageResponse{Success: true, Message: "Removed from watchlist"})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func forbidden(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
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
