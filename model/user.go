// Package model provides data models for the Cosmic Watch system.
package model

import (
	"time"
)

// Preferences holds per-user dashboard preferences.
type Preferences struct {
	RiskThreshold        string `json:"riskThreshold"` // low, medium, high, all
	NotificationsEnabled bool   `json:"notificationsEnabled"`
}

// ViewedAsteroid is one entry of the append-only per-user lookup log.
type ViewedAsteroid struct {
	AsteroidID string    `json:"asteroid_id"`
	ViewedAt   time.Time `json:"viewed_at"`
}

// User represents a user in the system.
type User struct {
	Key             string           `json:"_key,omitempty"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	PasswordHash    string           `json:"password_hash,omitempty"`
	Interests       []string         `json:"interests"`
	Preferences     Preferences      `json:"preferences"`
	ViewedAsteroids []ViewedAsteroid `json:"viewed_asteroids,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// NewUser creates a new user with default preferences.
func NewUser(name, email, passwordHash string) *User {
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Interests:    []string{},
		Preferences: Preferences{
			RiskThreshold:        "all",
			NotificationsEnabled: true,
		},
		CreatedAt: time.Now(),
	}
}

// PublicUser is the user shape returned by the API. The password hash and
// the viewed-asteroid log never leave the backend.
type PublicUser struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Interests   []string    `json:"interests"`
	Preferences Preferences `json:"preferences"`
}

// Public returns the API-safe projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.Key,
		Name:        u.Name,
		Email:       u.Email,
		Interests:   u.Interests,
		Preferences: u.Preferences,
	}
}
