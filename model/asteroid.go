// Package model provides data models for the Cosmic Watch system.
package model

import "encoding/json"

// Risk levels derived from the numeric risk score.
const (
	RiskLevelLow      = "low"
	RiskLevelMedium   = "medium"
	RiskLevelHigh     = "high"
	RiskLevelCritical = "critical"
)

// RiskAnalysis is the derived risk assessment attached to an asteroid at
// read time. It is never persisted and is recomputed on every request.
type RiskAnalysis struct {
	Score int    `json:"score"`
	Level string `json:"level"`
}

// DiameterRange holds the estimated min/max diameter in a single unit.
type DiameterRange struct {
	EstimatedDiameterMin float64 `json:"estimated_diameter_min"`
	EstimatedDiameterMax float64 `json:"estimated_diameter_max"`
}

// EstimatedDiameter holds diameter estimates per unit as reported by NeoWs.
type EstimatedDiameter struct {
	Kilometers *DiameterRange `json:"kilometers,omitempty"`
	Meters     *DiameterRange `json:"meters,omitempty"`
	Miles      *DiameterRange `json:"miles,omitempty"`
	Feet       *DiameterRange `json:"feet,omitempty"`
}

// RelativeVelocity is the velocity of a close approach. NeoWs reports the
// numbers as strings.
type RelativeVelocity struct {
	KilometersPerSecond string `json:"kilometers_per_second,omitempty"`
	KilometersPerHour   string `json:"kilometers_per_hour,omitempty"`
	MilesPerHour        string `json:"miles_per_hour,omitempty"`
}

// MissDistance is the closest distance of a close approach, string-encoded
// like the velocities.
type MissDistance struct {
	Astronomical string `json:"astronomical,omitempty"`
	Lunar        string `json:"lunar,omitempty"`
	Kilometers   string `json:"kilometers,omitempty"`
	Miles        string `json:"miles,omitempty"`
}

// CloseApproach is one close-approach record of an asteroid.
type CloseApproach struct {
	CloseApproachDate      string           `json:"close_approach_date,omitempty"`
	CloseApproachDateFull  string           `json:"close_approach_date_full,omitempty"`
	EpochDateCloseApproach int64            `json:"epoch_date_close_approach,omitempty"`
	RelativeVelocity       RelativeVelocity `json:"relative_velocity"`
	MissDistance           MissDistance     `json:"miss_distance"`
	OrbitingBody           string           `json:"orbiting_body,omitempty"`
}

// Asteroid is a near-earth object as served by the NASA NeoWs API, plus the
// optional derived RiskAnalysis. Upstream data is read-only; the only field
// this service ever writes is RiskAnalysis.
type Asteroid struct {
	Links                  json.RawMessage   `json:"links,omitempty"`
	ID                     string            `json:"id"`
	NeoReferenceID         string            `json:"neo_reference_id,omitempty"`
	Name                   string            `json:"name"`
	NasaJplURL             string            `json:"nasa_jpl_url,omitempty"`
	AbsoluteMagnitudeH     float64           `json:"absolute_magnitude_h,omitempty"`
	EstimatedDiameter      EstimatedDiameter `json:"estimated_diameter"`
	IsPotentiallyHazardous bool              `json:"is_potentially_hazardous_asteroid"`
	CloseApproachData      []CloseApproach   `json:"close_approach_data"`
	IsSentryObject         bool              `json:"is_sentry_object,omitempty"`
	OrbitalData            json.RawMessage   `json:"orbital_data,omitempty"`
	RiskAnalysis           *RiskAnalysis     `json:"risk_analysis,omitempty"`
}

// PageInfo is the pagination metadata of a browse response. When upstream
// omits it, TotalPages defaults to 1 and TotalElements to the list length.
type PageInfo struct {
	Size          int `json:"size,omitempty"`
	TotalElements int `json:"total_elements"`
	TotalPages    int `json:"total_pages"`
	Number        int `json:"number"`
}
