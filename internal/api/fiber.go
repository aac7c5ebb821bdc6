// Package api wires the Fiber application: middleware, health and metrics
// endpoints, the websocket chat route and the REST/GraphQL routes.
package api

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cosmicwatch/neo-backend/graphql"
	"github.com/cosmicwatch/neo-backend/restapi"
	"github.com/cosmicwatch/neo-backend/restapi/modules/chat"
)

// NewFiberApp creates and configures a Fiber app with REST, GraphQL and
// websocket routes
func NewFiberApp(deps restapi.Dependencies) *fiber.App {
	// Initialize GraphQL schema over the NASA gateway
	schema, err := graphql.CreateSchema(deps.NEO, deps.Hub)
	if err != nil {
		log.Fatalf("Failed to create GraphQL schema: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:     "neo-backend API v1.0",
		BodyLimit:   5 * 1024 * 1024, // 5MB
		ReadTimeout: 60 * time.Second,
	})

	// Middleware
	app.Use(fiberrecover.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))

	// Consolidated CORS Configuration
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000,http://localhost:5173,http://127.0.0.1:3000,http://127.0.0.1:5173",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		AllowMethods:     "GET, POST, HEAD, PUT, DELETE, PATCH, OPTIONS",
	}))

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("graphql_op", "-")
		return c.Next()
	})
	app.Use(logger.New())

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success":   true,
			"message":   "Cosmic Watch API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Websocket chat relay
	app.Use("/ws/chat", chat.UpgradeRequired)
	app.Get("/ws/chat", chat.Handler(deps.Hub))

	// Setup REST and GraphQL routes (Pass the schema here)
	restapi.SetupRoutes(app, deps, schema)

	return app
}
