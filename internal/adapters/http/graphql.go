package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/meetvasani/safar/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	providerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Provider",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.Int},
			"name":        &graphql.Field{Type: graphql.String},
			"type":        &graphql.Field{Type: graphql.String},
			"logoUrl":     &graphql.Field{Type: graphql.String},
			"rating":      &graphql.Field{Type: graphql.Float},
			"contactInfo": &graphql.Field{Type: graphql.String},
		},
	})

	routeDetailsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RouteResult",
		Fields: graphql.Fields{
			"id":             &graphql.Field{Type: graphql.Int},
			"scheduleId":     &graphql.Field{Type: graphql.Int},
			"providerId":     &graphql.Field{Type: graphql.Int},
			"providerName":   &graphql.Field{Type: graphql.String},
			"providerType":   &graphql.Field{Type: graphql.String},
			"providerLogo":   &graphql.Field{Type: graphql.String},
			"source":         &graphql.Field{Type: graphql.String},
			"destination":    &graphql.Field{Type: graphql.String},
			"departureTime":  &graphql.Field{Type: graphql.String},
			"arrivalTime":    &graphql.Field{Type: graphql.String},
			"duration":       &graphql.Field{Type: graphql.Int},
			"distance":       &graphql.Field{Type: graphql.Int},
			"fareAmount":     &graphql.Field{Type: graphql.Int},
			"availableSeats": &graphql.Field{Type: graphql.Int},
			"status":         &graphql.Field{Type: graphql.String},
			"vehicleId":      &graphql.Field{Type: graphql.String},
		},
	})

	offerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Offer",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.Int},
			"title":       &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"discount":    &graphql.Field{Type: graphql.Int},
			"validUntil":  &graphql.Field{Type: graphql.String},
			"imageUrl":    &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"providers": &graphql.Field{
				Type:        graphql.NewList(providerType),
				Description: "List all transport providers",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Catalog.ListProviders(p.Context)
				},
			},
			"providersByType": &graphql.Field{
				Type:        graphql.NewList(providerType),
				Description: "List providers for one transport type",
				Args: graphql.FieldConfigArgument{
					"type": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					t := p.Args["type"].(string)
					return deps.Catalog.ListProvidersByType(p.Context, domain.TransportType(t))
				},
			},
			"searchRoutes": &graphql.Field{
				Type:        graphql.NewList(routeDetailsType),
				Description: "Search routes between two cities for a transport type",
				Args: graphql.FieldConfigArgument{
					"source":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"destination": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"type":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"date":        &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					source := p.Args["source"].(string)
					destination := p.Args["destination"].(string)
					t := p.Args["type"].(string)
					date, _ := p.Args["date"].(string)
					return deps.Search.Search(p.Context, source, destination, domain.TransportType(t), date)
				},
			},
			"popularRoutes": &graphql.Field{
				Type:        graphql.NewList(routeDetailsType),
				Description: "Most-booked routes with live details",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Search.PopularRoutes(p.Context)
				},
			},
			"offers": &graphql.Field{
				Type:        graphql.NewList(offerType),
				Description: "Active promotional offers",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Catalog.ListOffers(p.Context)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
