// Package graphql assembles the root schema from the per-area query modules.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/cosmicwatch/neo-backend/graphql/modules/neo"
)

// CreateSchema builds the root query schema over the NASA gateway.
func CreateSchema(svc neo.Service, sockets neo.SocketCounter) (graphql.Schema, error) {
	fields := graphql.Fields{}
	for name, field := range neo.GetQueryFields(svc, sockets) {
		fields[name] = field
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}
