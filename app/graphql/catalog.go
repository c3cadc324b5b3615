// Package graphql exposes a read-only view of the menu and its reviews.
//
//	{ menu(category: "COFFEE") { id name price } }
//	{ reviews(menuItemId: 3) { rating comment userName } }
package graphql

import (
	"errors"

	"github.com/graphql-go/graphql"
	"github.com/ruangkopi/cafe/app/models"
	"github.com/ruangkopi/cafe/app/services"
	gqlhttp "github.com/ruangkopi/cafe/pkg/graphql"
)

var menuItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MenuItem",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.String},
		"category":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"price":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"imageUrl":    &graphql.Field{Type: graphql.String},
		"createdAt":   &graphql.Field{Type: graphql.DateTime},
	},
})

var reviewType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Review",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"menuItemId":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"orderId":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"rating":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"comment":      &graphql.Field{Type: graphql.String},
		"userName":     &graphql.Field{Type: graphql.String},
		"menuItemName": &graphql.Field{Type: graphql.String},
		"createdAt":    &graphql.Field{Type: graphql.DateTime},
	},
})

func menuItemValue(m models.MenuItem) map[string]any {
	return map[string]any{
		"id":          int(m.ID),
		"name":        m.Name,
		"description": m.Description,
		"category":    string(m.Category),
		"price":       int(m.Price),
		"imageUrl":    m.ImageURL,
		"createdAt":   m.CreatedAt,
	}
}

func reviewValue(r models.Review) map[string]any {
	v := map[string]any{
		"id":         int(r.ID),
		"menuItemId": int(r.MenuItemID),
		"orderId":    int(r.OrderID),
		"rating":     r.Rating,
		"comment":    nil,
		"createdAt":  r.CreatedAt,
	}
	if r.Comment != nil {
		v["comment"] = *r.Comment
	}
	if r.User != nil {
		v["userName"] = r.User.Name
	}
	if r.MenuItem != nil {
		v["menuItemName"] = r.MenuItem.Name
	}
	return v
}

// optionalID reads a nullable Int argument.
func optionalID(args map[string]any, key string) *uint {
	n, ok := args[key].(int)
	if !ok || n <= 0 {
		return nil
	}
	id := uint(n)
	return &id
}

// Schema builds the catalog schema over the menu and review services.
func Schema(svc *services.Services) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"menu": &graphql.Field{
				Type: graphql.NewList(menuItemType),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					category, _ := p.Args["category"].(string)
					items, err := svc.Menu.List(p.Context, category)
					if err != nil {
						return nil, err
					}
					out := make([]map[string]any, len(items))
					for i, it := range items {
						out[i] = menuItemValue(it)
					}
					return out, nil
				},
			},
			"menuItem": &graphql.Field{
				Type: menuItemType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id := optionalID(p.Args, "id")
					if id == nil {
						return nil, nil
					}
					item, err := svc.Menu.Get(p.Context, *id)
					if errors.Is(err, services.ErrNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return menuItemValue(*item), nil
				},
			},
			"reviews": &graphql.Field{
				Type: graphql.NewList(reviewType),
				Args: graphql.FieldConfigArgument{
					"menuItemId": &graphql.ArgumentConfig{Type: graphql.Int},
					"orderId":    &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					reviews, err := svc.Reviews.List(p.Context,
						optionalID(p.Args, "menuItemId"), optionalID(p.Args, "orderId"))
					if err != nil {
						return nil, err
					}
					out := make([]map[string]any, len(reviews))
					for i, r := range reviews {
						out[i] = reviewValue(r)
					}
					return out, nil
				},
			},
		},
	})
	return gqlhttp.NewSchema(query)
}
