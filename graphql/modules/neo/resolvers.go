// Package neo implements the resolvers for the asteroid queries.
package neo

import (
	"context"

	"github.com/cosmicwatch/neo-backend/model"
	"github.com/cosmicwatch/neo-backend/nasa"
)

// Service is the slice of the NASA gateway the resolvers consume.
type Service interface {
	LookupAsteroid(ctx context.Context, asteroidID string) (model.Asteroid, error)
	FeedByDateRange(ctx context.Context, startDate, endDate, riskLevel string) ([]model.Asteroid, error)
	GetStats(ctx context.Context) (*nasa.Stats, error)
}

// SocketCounter reports the number of live websocket connections.
type SocketCounter interface {
	ConnectionCount() int
}

// ResolveAsteroid handles fetching a single enriched asteroid by id
func ResolveAsteroid(ctx context.Context, svc Service, asteroidID string) (interface{}, error) {
	asteroid, err := svc.LookupAsteroid(ctx, asteroidID)
	if err != nil {
		return nil, err
	}
	return asteroid, nil
}

// ResolveFeed handles fetching the enriched date-range feed
func ResolveFeed(ctx context.Context, svc Service, startDate, endDate, riskLevel string) (interface{}, error) {
	return svc.FeedByDateRange(ctx, startDate, endDate, riskLevel)
}

// ResolveStats handles fetching the landing-page aggregates
func ResolveStats(ctx context.Context, svc Service, sockets SocketCounter) (interface{}, error) {
	stats, err := svc.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	socketCount := 0
	if sockets != nil {
		socketCount = sockets.ConnectionCount()
	}

	return map[string]interface{}{
		"total_neos":          stats.TotalNEOs,
		"hazardous_count":     stats.HazardousCount,
		"closest_approach_ld": stats.ClosestApproachLD,
		"socket_count":        socketCount,
	}, nil
}
