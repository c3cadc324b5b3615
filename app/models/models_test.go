package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	all := []Status{StatusPending, StatusProcessing, StatusCompleted, StatusCancelled}
	allowed := map[[2]Status]bool{
		{StatusPending, StatusProcessing}:   true,
		{StatusPending, StatusCancelled}:    true,
		{StatusProcessing, StatusCompleted}: true,
		{StatusProcessing, StatusCancelled}: true,
	}
	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]Status{from, to}], from.CanTransition(to), "%s -> %s", from, to)
		}
	}
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, Status("SHIPPED").Valid())
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, c.Valid())
	}
	assert.False(t, Category("DESSERT").Valid())
	assert.False(t, Category("coffee").Valid())
}

func TestOrderJSONShape(t *testing.T) {
	id := uint(3)
	o := Order{
		ID: 1, UserID: 2, Status: StatusPending, TotalPrice: 30000,
		User:  &User{ID: 2, Name: "Budi", Email: "budi@example.com", Password: "secret"},
		Items: []OrderItem{{ID: 9, OrderID: 1, MenuItemID: &id, Quantity: 2, Price: 15000}},
	}
	raw, err := json.Marshal(o)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, map[string]any{"id": 2.0, "name": "Budi", "email": "budi@example.com"}, got["user"])
	assert.Equal(t, 30000.0, got["totalPrice"])
	assert.NotContains(t, string(raw), "secret")
	assert.Equal(t, int64(30000), o.Items[0].LineTotal())

	o.User = nil
	raw, err = json.Marshal(o)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"user"`)
}

func TestReviewJSONShape(t *testing.T) {
	r := Review{ID: 1, UserID: 2, MenuItemID: 3, OrderID: 4, Rating: 5,
		User: &User{Name: "Sari", Email: "sari@example.com"}, MenuItem: &MenuItem{Name: "Latte"}}
	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"user":{"name":"Sari"}`)
	assert.Contains(t, string(raw), `"menuItem":{"name":"Latte"}`)
	assert.NotContains(t, string(raw), "sari@example.com")
}
