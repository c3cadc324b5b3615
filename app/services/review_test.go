package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruangkopi/cafe/app/models"
)

func flex(n int64) FlexInt {
	return FlexInt{Value: n, Present: true, Numeric: true, OK: true}
}

func TestCreateReview(t *testing.T) {
	f := newFixture(t)
	coffee := f.menuItem(t, "Es Kopi Susu", models.CategoryCoffee, 15000)
	cake := f.menuItem(t, "Brownies", models.CategoryDessert, 20000)
	order := f.order(t, f.customer, cart(t, `[{"id": %d, "qty": 2}, {"id": %d}]`, coffee.ID, cake.ID))
	f.advance(t, order.ID, models.StatusProcessing, models.StatusCompleted)

	review, err := f.reviews.Create(f.ctx, f.customer, ReviewInput{
		MenuItemID: flex(int64(coffee.ID)),
		OrderID:    flex(int64(order.ID)),
		Rating:     flex(5),
		Comment:    strPtr("  Mantap!  "),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "Mantap!", *review.Comment)
	require.NotNil(t, review.User)
	assert.Equal(t, "Budi Santoso", review.User.Name)
	require.NotNil(t, review.MenuItem)
	assert.Equal(t, "Es Kopi Susu", review.MenuItem.Name)

	blank, err := f.reviews.Create(f.ctx, f.customer, ReviewInput{
		MenuItemID: flex(int64(cake.ID)),
		OrderID:    flex(int64(order.ID)),
		Rating:     flex(4),
		Comment:    strPtr("   "),
	})
	require.NoError(t, err)
	assert.Nil(t, blank.Comment)

	_, err = f.reviews.Create(f.ctx, f.customer, ReviewInput{
		MenuItemID: flex(int64(coffee.ID)),
		OrderID:    flex(int64(order.ID)),
		Rating:     flex(3),
	})
	assert.ErrorIs(t, err, ErrConflict)

	byItem := coffee.ID
	list, err := f.reviews.List(f.ctx, &byItem, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, review.ID, list[0].ID)

	byOrder := order.ID
	list, err = f.reviews.List(f.ctx, nil, &byOrder)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, blank.ID, list[0].ID)
}

func TestCreateReviewGates(t *testing.T) {
	f := newFixture(t)
	coffee := f.menuItem(t, "Es Kopi Susu", models.CategoryCoffee, 15000)
	cake := f.menuItem(t, "Brownies", models.CategoryDessert, 20000)

	pending := f.order(t, f.customer, cart(t, `[{"id": %d}]`, coffee.ID))
	done := f.order(t, f.customer, cart(t, `[{"id": %d}]`, coffee.ID))
	f.advance(t, done.ID, models.StatusProcessing, models.StatusCompleted)

	input := func(item, order uint, rating int64) ReviewInput {
		return ReviewInput{MenuItemID: flex(int64(item)), OrderID: flex(int64(order)), Rating: flex(rating)}
	}

	cases := []struct {
		name  string
		run   func() error
		wants error
	}{
		{"someone else's order", func() error {
			_, err := f.reviews.Create(f.ctx, f.other, input(coffee.ID, done.ID, 5))
			return err
		}, ErrForbidden},
		{"admin on a customer's order", func() error {
			_, err := f.reviews.Create(f.ctx, f.admin, input(coffee.ID, done.ID, 5))
			return err
		}, ErrForbidden},
		{"order not completed", func() error {
			_, err := f.reviews.Create(f.ctx, f.customer, input(coffee.ID, pending.ID, 5))
			return err
		}, ErrInvalidState},
		{"item not in order", func() error {
			_, err := f.reviews.Create(f.ctx, f.customer, input(cake.ID, done.ID, 5))
			return err
		}, ErrInvalidInput},
		{"rating zero", func() error {
			_, err := f.reviews.Create(f.ctx, f.customer, input(coffee.ID, done.ID, 0))
			return err
		}, ErrInvalidInput},
		{"rating six", func() error {
			_, err := f.reviews.Create(f.ctx, f.customer, input(coffee.ID, done.ID, 6))
			return err
		}, ErrInvalidInput},
		{"missing order", func() error {
			_, err := f.reviews.Create(f.ctx, f.customer, input(coffee.ID, 9999, 5))
			return err
		}, ErrNotFound},
		{"missing fields", func() error {
			_, err := f.reviews.Create(f.ctx, f.customer, ReviewInput{Rating: flex(5)})
			return err
		}, ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.run(), tc.wants)
		})
	}
}

func TestReviewsOfDeletedItemAreRemoved(t *testing.T) {
	f := newFixture(t)
	coffee := f.menuItem(t, "Es Kopi Susu", models.CategoryCoffee, 15000)
	order := f.order(t, f.customer, cart(t, `[{"id": %d}]`, coffee.ID))
	f.advance(t, order.ID, models.StatusProcessing, models.StatusCompleted)

	_, err := f.reviews.Create(f.ctx, f.customer, ReviewInput{
		MenuItemID: flex(int64(coffee.ID)), OrderID: flex(int64(order.ID)), Rating: flex(5),
	})
	require.NoError(t, err)

	require.NoError(t, f.menu.Delete(f.ctx, f.admin, coffee.ID))

	list, err := f.reviews.List(f.ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, list)

	kept, err := f.orders.Get(f.ctx, f.customer, order.ID)
	require.NoError(t, err)
	require.Len(t, kept.Items, 1)
	assert.Nil(t, kept.Items[0].MenuItemID)
	assert.Nil(t, kept.Items[0].MenuItem)
	assert.Equal(t, int64(15000), kept.TotalPrice)
}
