// Package neo defines the GraphQL types for the asteroid data.
package neo

import (
	"github.com/graphql-go/graphql"
)

// RiskAnalysisType represents the derived risk assessment
var RiskAnalysisType = graphql.NewObject(graphql.ObjectConfig{
	Name: "RiskAnalysis",
	Fields: graphql.Fields{
		"score": &graphql.Field{Type: graphql.Int},
		"level": &graphql.Field{Type: graphql.String},
	},
})

// DiameterRangeType represents a min/max diameter estimate in one unit
var DiameterRangeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DiameterRange",
	Fields: graphql.Fields{
		"estimated_diameter_min": &graphql.Field{Type: graphql.Float},
		"estimated_diameter_max": &graphql.Field{Type: graphql.Float},
	},
})

// EstimatedDiameterType represents the per-unit diameter estimates
var EstimatedDiameterType = graphql.NewObject(graphql.ObjectConfig{
	Name: "EstimatedDiameter",
	Fields: graphql.Fields{
		"kilometers": &graphql.Field{Type: DiameterRangeType},
		"meters":     &graphql.Field{Type: DiameterRangeType},
		"miles":      &graphql.Field{Type: DiameterRangeType},
		"feet":       &graphql.Field{Type: DiameterRangeType},
	},
})

// RelativeVelocityType represents close-approach velocity, string-encoded
// upstream
var RelativeVelocityType = graphql.NewObject(graphql.ObjectConfig{
	Name: "RelativeVelocity",
	Fields: graphql.Fields{
		"kilometers_per_second": &graphql.Field{Type: graphql.String},
		"kilometers_per_hour":   &graphql.Field{Type: graphql.String},
		"miles_per_hour":        &graphql.Field{Type: graphql.String},
	},
})

// MissDistanceType represents the close-approach miss distance
var MissDistanceType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MissDistance",
	Fields: graphql.Fields{
		"astronomical": &graphql.Field{Type: graphql.String},
		"lunar":        &graphql.Field{Type: graphql.String},
		"kilometers":   &graphql.Field{Type: graphql.String},
		"miles":        &graphql.Field{Type: graphql.String},
	},
})

// CloseApproachType represents one close-approach record
var CloseApproachType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CloseApproach",
	Fields: graphql.Fields{
		"close_approach_date":      &graphql.Field{Type: graphql.String},
		"close_approach_date_full": &graphql.Field{Type: graphql.String},
		"relative_velocity":        &graphql.Field{Type: RelativeVelocityType},
		"miss_distance":            &graphql.Field{Type: MissDistanceType},
		"orbiting_body":            &graphql.Field{Type: graphql.String},
	},
})

// AsteroidType represents a near-earth object with its derived risk
var AsteroidType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Asteroid",
	Fields: graphql.Fields{
		"id":                                &graphql.Field{Type: graphql.String},
		"neo_reference_id":                  &graphql.Field{Type: graphql.String},
		"name":                              &graphql.Field{Type: graphql.String},
		"nasa_jpl_url":                      &graphql.Field{Type: graphql.String},
		"absolute_magnitude_h":              &graphql.Field{Type: graphql.Float},
		"estimated_diameter":                &graphql.Field{Type: EstimatedDiameterType},
		"is_potentially_hazardous_asteroid": &graphql.Field{Type: graphql.Boolean},
		"close_approach_data":               &graphql.Field{Type: graphql.NewList(CloseApproachType)},
		"is_sentry_object":                  &graphql.Field{Type: graphql.Boolean},
		"risk_analysis":                     &graphql.Field{Type: RiskAnalysisType},
	},
})

// StatsType represents the landing-page aggregates
var StatsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Stats",
	Fields: graphql.Fields{
		"total_neos":          &graphql.Field{Type: graphql.Int},
		"hazardous_count":     &graphql.Field{Type: graphql.Int},
		"closest_approach_ld": &graphql.Field{Type: graphql.Float},
		"socket_count":        &graphql.Field{Type: graphql.Int},
	},
})
