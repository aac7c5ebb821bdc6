// Package model provides data models for the Cosmic Watch system.
package model

import (
	"encoding/json"
	"time"
)

// WatchlistItem is a saved asteroid reference owned by one user. The pair
// (UserID, AsteroidID) is unique per the watchlist collection index.
type WatchlistItem struct {
	Key          string          `json:"_key,omitempty"`
	UserID       string          `json:"user_id"`
	AsteroidID   string          `json:"asteroid_id"`
	AsteroidName string          `json:"asteroid_name"`
	AsteroidData json.RawMessage `json:"asteroid_data"`
	Notes        string          `json:"notes,omitempty"`
	AddedAt      time.Time       `json:"added_at"`
}
