// Package neo exposes the NASA NeoWs proxy routes: feed, browse, lookup,
// stats and the cache control endpoint.
package neo

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cosmicwatch/neo-backend/database"
	"github.com/cosmicwatch/neo-backend/model"
	"github.com/cosmicwatch/neo-backend/nasa"
	"github.com/cosmicwatch/neo-backend/restapi/modules/auth"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	// alertScoreThreshold marks the risk score at which a lookup publishes a
	// hazard alert event.
	alertScoreThreshold = 70
)

// Service is the slice of the NASA gateway the handlers consume.
type Service interface {
	FeedByDateRange(ctx context.Context, startDate, endDate, riskLevel string) ([]model.Asteroid, error)
	BrowseEnriched(ctx context.Context, page, size int, riskLevel string) (*nasa.BrowseResult, error)
	LookupAsteroid(ctx context.Context, asteroidID string) (model.Asteroid, error)
	GetStats(ctx context.Context) (*nasa.Stats, error)
	ClearCache()
}

// SocketCounter reports the number of live websocket connections.
type SocketCounter interface {
	ConnectionCount() int
}

// AlertPublisher emits hazard alert events for high-risk asteroids. A nil
// publisher disables alerting.
type AlertPublisher interface {
	Publish(ctx context.Context, asteroid model.Asteroid) error
}

// GetFeed serves both listing modes. With start_date and end_date it returns
// the full enriched date range; without them it returns one paginated browse
// page. risk_level filters either mode.
func GetFeed(svc Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		startDate := c.Query("start_date")
		endDate := c.Query("end_date")

		riskLevel := c.Query("risk_level")
		switch riskLevel {
		case "", model.RiskLevelLow, model.RiskLevelMedium, model.RiskLevelHigh:
		default:
			return badRequest(c, "risk_level must be one of low, medium, high")
		}

		if (startDate == "") != (endDate == "") {
			return badRequest(c, "start_date and end_date must be provided together")
		}

		if startDate != "" {
			if !validDate(startDate) || !validDate(endDate) {
				return badRequest(c, "Dates must be in YYYY-MM-DD format")
			}

			asteroids, err := svc.FeedByDateRange(c.Context(), startDate, endDate, riskLevel)
			if err != nil {
				return sendServiceError(c, err)
			}
			return c.JSON(model.FeedResponse{
				Success:   true,
				Count:     len(asteroids),
				Asteroids: asteroids,
			})
		}

		page, err := queryInt(c, "page", 0)
		if err != nil || page < 0 {
			return badRequest(c, "page must be a non-negative integer")
		}
		size, err := queryInt(c, "size", defaultPageSize)
		if err != nil || size < 1 || size > maxPageSize {
			return badRequest(c, "size must be between 1 and 100")
		}

		result, err := svc.BrowseEnriched(c.Context(), page, size, riskLevel)
		if err != nil {
			return sendServiceError(c, err)
		}
		return c.JSON(model.BrowseResponse{
			Success:       true,
			Count:         len(result.Asteroids),
			Page:          result.Page,
			TotalPages:    result.TotalPages,
			TotalElements: result.TotalElements,
			Asteroids:     result.Asteroids,
			Links:         result.Links,
		})
	}
}

// LookupAsteroid fetches one asteroid by its NeoWs id. For authenticated
// callers the lookup is appended to their viewed log; a high-risk result
// additionally publishes a hazard alert. Both side effects are best-effort.
func LookupAsteroid(svc Service, db database.DBConnection, alerts AlertPublisher, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		asteroidID := c.Params("asteroidId")
		if asteroidID == "" {
			return badRequest(c, "Asteroid id is required")
		}

		asteroid, err := svc.LookupAsteroid(c.Context(), asteroidID)
		if err != nil {
			return sendServiceError(c, err)
		}

		if user := auth.CurrentUser(c); user != nil {
			if err := auth.RecordViewedAsteroid(c.Context(), db, user.Key, asteroid.ID); err != nil {
				logger.Warn("failed to record viewed asteroid",
					zap.String("user", user.Key), zap.Error(err))
			}
		}

		if alerts != nil && asteroid.RiskAnalysis != nil && asteroid.RiskAnalysis.Score >= alertScoreThreshold {
			if err := alerts.Publish(c.Context(), asteroid); err != nil {
				logger.Warn("failed to publish hazard alert",
					zap.String("asteroid", asteroid.ID), zap.Error(err))
			}
		}

		return c.JSON(model.LookupResponse{Success: true, Asteroid: asteroid})
	}
}

// GetStats serves the public landing-page aggregates.
func GetStats(svc Service, sockets SocketCounter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.GetStats(c.Context())
		if err != nil {
			return sendServiceError(c, err)
		}

		socketCount := 0
		if sockets != nil {
			socketCount = sockets.ConnectionCount()
		}

		return c.JSON(model.StatsResponse{
			Success:           true,
			TotalNEOs:         stats.TotalNEOs,
			HazardousCount:    stats.HazardousCount,
			ClosestApproachLD: stats.ClosestApproachLD,
			SocketCount:       socketCount,
		})
	}
}

// ClearCache drops every cached NASA response.
func ClearCache(svc Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		svc.ClearCache()
		return c.JSON(model.MessageResponse{Success: true, Message: "Cache cleared successfully"})
	}
}

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func queryInt(c *fiber.Ctx, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// sendServiceError maps gateway errors onto the response envelope. Not-found
// and classified upstream failures keep their status; everything else is a
// 500.
func sendServiceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, nasa.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Asteroid not found",
		})
	}

	var apiErr *nasa.APIError
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.StatusCode).JSON(fiber.Map{
			"success": false,
			"message": apiErr.Message,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "Internal server error",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
