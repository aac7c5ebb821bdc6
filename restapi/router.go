// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/cosmicwatch/neo-backend/database"
	"github.com/cosmicwatch/neo-backend/nasa"
	"github.com/cosmicwatch/neo-backend/restapi/modules/auth"
	"github.com/cosmicwatch/neo-backend/restapi/modules/chat"
	"github.com/cosmicwatch/neo-backend/restapi/modules/impact"
	"github.com/cosmicwatch/neo-backend/restapi/modules/neo"
	"github.com/cosmicwatch/neo-backend/restapi/modules/watchlist"
)

// Dependencies bundles the shared services the route handlers need.
type Dependencies struct {
	DB     database.DBConnection
	NEO    *nasa.Service
	Hub    *chat.Hub
	Alerts neo.AlertPublisher
	AI     impact.ChatCompleter
	Logger *zap.Logger
}

// SetupRoutes configures all REST API routes and the GraphQL endpoint.
func SetupRoutes(app *fiber.App, deps Dependencies, schema graphql.Schema) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// API Group /api
	api := app.Group("/api")

	// GraphQL Route - Mounted within the api group to inherit path prefixes
	api.Post("/v1/graphql", auth.OptionalAuth(deps.DB), GraphQLHandler(schema))

	// User Routes
	userGroup := api.Group("/user")
	userGroup.Post("/signup", auth.Signup(deps.DB))
	userGroup.Post("/login", auth.Login(deps.DB))
	userGroup.Get("/me", auth.Protect(deps.DB), auth.Me())
	userGroup.Put("/preferences", auth.Protect(deps.DB), auth.UpdatePreferences(deps.DB))
	userGroup.Post("/logout", auth.Protect(deps.DB), auth.Logout())

	// NEO Routes. Stats is the public landing-page endpoint; everything else
	// requires a session.
	api.Get("/stats", neo.GetStats(deps.NEO, deps.Hub))
	api.Get("/feed", auth.Protect(deps.DB), neo.GetFeed(deps.NEO))
	api.Get("/lookup/:asteroidId", auth.Protect(deps.DB), neo.LookupAsteroid(deps.NEO, deps.DB, deps.Alerts, logger))
	api.Post("/cache/clear", auth.Protect(deps.DB), neo.ClearCache(deps.NEO))
	api.Post("/hypothetical-hit", auth.Protect(deps.DB), impact.HypotheticalHit(deps.AI))

	// Watchlist Routes
	watchGroup := api.Group("/watchlist", auth.Protect(deps.DB))
	watchGroup.Get("/", watchlist.GetWatchlist(deps.DB))
	watchGroup.Post("/", watchlist.AddToWatchlist(deps.DB))
	watchGroup.Put("/:id", watchlist.UpdateWatchlistItem(deps.DB))
	watchGroup.Delete("/:id", watchlist.RemoveFromWatchlist(deps.DB))

	log.Println("API routes initialized successfully")
}
