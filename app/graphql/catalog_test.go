package graphql

import (
	"context"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruangkopi/cafe/app/models"
	"github.com/ruangkopi/cafe/app/repositories"
	"github.com/ruangkopi/cafe/app/services"
	"github.com/ruangkopi/cafe/internal/testdb"
)

func TestCatalogQueries(t *testing.T) {
	db := testdb.Open(t)
	menu := repositories.NewMenuRepository(db)
	ctx := context.Background()

	latte := &models.MenuItem{Name: "Latte", Category: models.CategoryCoffee, Price: 22000}
	fries := &models.MenuItem{Name: "Kentang Goreng", Category: models.CategorySnack, Price: 15000}
	require.NoError(t, menu.Create(ctx, latte))
	require.NoError(t, menu.Create(ctx, fries))

	schema, err := Schema(services.New(db, nil, nil))
	require.NoError(t, err)

	run := func(q string) map[string]any {
		res := graphql.Do(graphql.Params{Schema: schema, RequestString: q, Context: ctx})
		require.Empty(t, res.Errors)
		return res.Data.(map[string]any)
	}

	data := run(`{ menu(category: "COFFEE") { id name price category } }`)
	items := data["menu"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Latte", items[0].(map[string]any)["name"])
	assert.Equal(t, 22000, items[0].(map[string]any)["price"])

	data = run(`{ menu { name } }`)
	assert.Len(t, data["menu"].([]any), 2)

	data = run(`{ menuItem(id: 999) { name } }`)
	assert.Nil(t, data["menuItem"])

	data = run(`{ reviews { id } }`)
	assert.Empty(t, data["reviews"].([]any))

	res := graphql.Do(graphql.Params{Schema: schema, RequestString: `{ menu(category: "TEA") { id } }`, Context: ctx})
	assert.NotEmpty(t, res.Errors)
}
