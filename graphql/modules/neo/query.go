// Package neo defines the GraphQL queries for the asteroid data.
package neo

import (
	"github.com/graphql-go/graphql"
)

// GetQueryFields returns the asteroid queries to be mounted in the root schema
func GetQueryFields(svc Service, sockets SocketCounter) graphql.Fields {
	return graphql.Fields{
		// Single asteroid lookup with derived risk
		"asteroid": &graphql.Field{
			Type: AsteroidType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				asteroidID := p.Args["id"].(string)
				return ResolveAsteroid(p.Context, svc, asteroidID)
			},
		},

		// Date-range feed, optionally filtered by risk level
		"feed": &graphql.Field{
			Type: graphql.NewList(AsteroidType),
			Args: graphql.FieldConfigArgument{
				"startDate": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"endDate":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"riskLevel": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				startDate := p.Args["startDate"].(string)
				endDate := p.Args["endDate"].(string)
				riskLevel := p.Args["riskLevel"].(string)
				return ResolveFeed(p.Context, svc, startDate, endDate, riskLevel)
			},
		},

		// Landing-page aggregates
		"stats": &graphql.Field{
			Type: StatsType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveStats(p.Context, svc, sockets)
			},
		},
	}
}
