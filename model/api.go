// Package model - API types for request/response payloads
package model

import "encoding/json"

// ErrorResponse is the common error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MessageResponse is the common success envelope for operations without a
// payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FeedResponse is returned by the date-range feed mode. No pagination is
// applied; the full filtered range is returned.
type FeedResponse struct {
	Success   bool       `json:"success"`
	Count     int        `json:"count"`
	Asteroids []Asteroid `json:"asteroids"`
}

// BrowseResponse is returned by the paginated browse mode.
type BrowseResponse struct {
	Success       bool           `json:"success"`
	Count         int            `json:"count"`
	Page          int            `json:"page"`
	TotalPages    int            `json:"totalPages"`
	TotalElements int            `json:"totalElements"`
	Asteroids     []Asteroid      `json:"asteroids"`
	Links         json.RawMessage `json:"links,omitempty"`
}

// LookupResponse is returned by the single-asteroid lookup.
type LookupResponse struct {
	Success  bool     `json:"success"`
	Asteroid Asteroid `json:"asteroid"`
}

// StatsResponse is the public landing-page stats payload. ClosestApproachLD
// is nil when the 7-day window contained no close approaches.
type StatsResponse struct {
	Success           bool     `json:"success"`
	TotalNEOs         int      `json:"totalNEOs"`
	HazardousCount    int      `json:"hazardousCount"`
	ClosestApproachLD *float64 `json:"closestApproachLD"`
	SocketCount       int      `json:"socketCount"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Success bool       `json:"success"`
	Token   string     `json:"token"`
	User    PublicUser `json:"user"`
}

// UserResponse is returned by the profile endpoints.
type UserResponse struct {
	Success bool       `json:"success"`
	User    PublicUser `json:"user"`
}

// WatchlistResponse is returned by the watchlist list endpoint.
type WatchlistResponse struct {
	Success   bool            `json:"success"`
	Count     int             `json:"count"`
	Watchlist []WatchlistItem `json:"watchlist"`
}

// WatchlistItemResponse is returned by watchlist create/update.
type WatchlistItemResponse struct {
	Success       bool          `json:"success"`
	WatchlistItem WatchlistItem `json:"watchlistItem"`
}

// ScenarioResponse is returned by the hypothetical impact endpoint.
type ScenarioResponse struct {
	Success  bool   `json:"success"`
	Scenario string `json:"scenario"`
}
