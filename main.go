// Cosmic Watch backend: a caching NASA NeoWs proxy with risk scoring,
// accounts, watchlists, realtime chat and hazard alert events.
package main

import (
	"context"
	"log"
	"time"

	"github.com/jonboulle/clockwork"
	openai "github.com/sashabaranov/go-openai"

	"github.com/cosmicwatch/neo-backend/database"
	"github.com/cosmicwatch/neo-backend/events/modules/alerts"
	"github.com/cosmicwatch/neo-backend/internal/api"
	"github.com/cosmicwatch/neo-backend/internal/kafka"
	"github.com/cosmicwatch/neo-backend/nasa"
	"github.com/cosmicwatch/neo-backend/restapi"
	"github.com/cosmicwatch/neo-backend/restapi/modules/chat"
	"github.com/cosmicwatch/neo-backend/util"
)

func main() {
	logger := database.InitLogger()

	settings, err := util.LoadSettings("")
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	// Initialize database connection
	db := database.InitializeDatabase()

	// NASA gateway with the in-process response cache
	clock := clockwork.NewRealClock()
	neoService := nasa.NewService(nasa.Config{
		BaseURL: settings.NasaBaseURL,
		APIKey:  settings.NasaAPIKey,
		Cache:   nasa.NewMemoryCache(time.Duration(settings.CacheTTLMinutes)*time.Minute, clock),
		Clock:   clock,
		Logger:  logger,
	})

	// Websocket chat hub
	hub := chat.NewHub(logger)

	deps := restapi.Dependencies{
		DB:     db,
		NEO:    neoService,
		Hub:    hub,
		Logger: logger,
	}

	// Hazard alert events are optional; without brokers the lookup path
	// simply skips publishing.
	if len(settings.KafkaBrokers) > 0 {
		producer := alerts.NewProducer(settings.KafkaBrokers, settings.KafkaAlertTopic)
		defer producer.Close()
		deps.Alerts = producer

		if err := kafka.RunAlertRelay(context.Background(), hub); err != nil {
			logger.Sugar().Warnf("Hazard alert relay unavailable: %v", err)
		}
	}

	// The hypothetical impact route answers 503 until a key is configured.
	if settings.OpenAIAPIKey != "" {
		deps.AI = openai.NewClient(settings.OpenAIAPIKey)
	}

	app := api.NewFiberApp(deps)

	// Start server
	log.Printf("Starting server on port %s", settings.Port)
	log.Printf("GraphQL endpoint available at /api/v1/graphql")
	if err := app.Listen(":" + settings.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
