package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruangkopi/cafe/app/models"
	"github.com/ruangkopi/cafe/config"
	"github.com/ruangkopi/cafe/pkg/auth"
)

func TestDashboardStatsAndActiveQueue(t *testing.T) {
	f := newFixture(t)
	config.Set("DASHBOARD_ACTIVE_LIMIT", "2")
	t.Cleanup(func() { config.Set("DASHBOARD_ACTIVE_LIMIT", "10") })

	coffee := f.menuItem(t, "Es Kopi Susu", models.CategoryCoffee, 15000)
	snack := f.menuItem(t, "Pisang Goreng", models.CategorySnack, 10000)

	done := f.order(t, f.customer, cart(t, `[{"id": %d, "qty": 2}]`, coffee.ID))
	f.advance(t, done.ID, models.StatusProcessing, models.StatusCompleted)
	cancelled := f.order(t, f.other, cart(t, `[{"id": %d}]`, snack.ID))
	f.advance(t, cancelled.ID, models.StatusCancelled)
	f.order(t, f.customer, cart(t, `[{"id": %d}]`, snack.ID))
	b := f.order(t, f.other, cart(t, `[{"id": %d}, {"id": %d, "qty": 3}]`, coffee.ID, snack.ID))
	c := f.order(t, f.customer, cart(t, `[{"id": %d}]`, coffee.ID))
	f.advance(t, b.ID, models.StatusProcessing)

	dash, err := f.dashboard.Dashboard(f.ctx, f.admin)
	require.NoError(t, err)

	assert.Equal(t, DashboardStats{
		TotalOrders:    5,
		TotalUsers:     3,
		TotalMenuItems: 2,
		TotalItemsSold: 2 + 1 + 1 + 1 + 3 + 1,
		TotalRevenue:   30000 + 10000 + 10000 + 15000 + 30000 + 15000,
	}, dash.Stats)

	require.Len(t, dash.Orders, 2)
	assert.Equal(t, c.ID, dash.Orders[0].ID)
	assert.Equal(t, b.ID, dash.Orders[1].ID)
	for _, o := range dash.Orders {
		assert.False(t, o.Status.Terminal())
	}

	_, err = f.dashboard.Dashboard(f.ctx, f.customer)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestHistoryFilters(t *testing.T) {
	f := newFixture(t)
	item := f.menuItem(t, "Es Kopi Susu", models.CategoryCoffee, 15000)

	old := f.order(t, f.customer, cart(t, `[{"id": %d}]`, item.ID))
	f.advance(t, old.ID, models.StatusProcessing, models.StatusCompleted)
	recent := f.order(t, f.other, cart(t, `[{"id": %d}]`, item.ID))
	f.advance(t, recent.ID, models.StatusCancelled)
	f.order(t, f.customer, cart(t, `[{"id": %d}]`, item.ID))

	at := func(id uint, ts time.Time) {
		require.NoError(t, f.db.Model(&models.Order{}).Where("id = ?", id).Update("created_at", ts).Error)
	}
	at(old.ID, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))
	at(recent.ID, time.Date(2024, 5, 20, 23, 30, 0, 0, time.UTC))

	all, err := f.dashboard.History(f.ctx, f.admin, HistoryQuery{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, recent.ID, all[0].ID)
	assert.Equal(t, old.ID, all[1].ID)

	byName, err := f.dashboard.History(f.ctx, f.admin, HistoryQuery{Q: "SARI"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, recent.ID, byName[0].ID)

	byEmail, err := f.dashboard.History(f.ctx, f.admin, HistoryQuery{Q: "budi@"})
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, old.ID, byEmail[0].ID)

	sameDay, err := f.dashboard.History(f.ctx, f.admin, HistoryQuery{From: "2024-05-20", To: "2024-05-20"})
	require.NoError(t, err)
	require.Len(t, sameDay, 1)
	assert.Equal(t, recent.ID, sameDay[0].ID)

	upTo, err := f.dashboard.History(f.ctx, f.admin, HistoryQuery{To: "2024-04-01T00:00:00Z"})
	require.NoError(t, err)
	require.Len(t, upTo, 1)
	assert.Equal(t, old.ID, upTo[0].ID)

	_, err = f.dashboard.History(f.ctx, f.admin, HistoryQuery{From: "20/05/2024"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.dashboard.History(f.ctx, f.admin, HistoryQuery{From: "2024-06-01", To: "2024-05-01"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.dashboard.History(f.ctx, f.other, HistoryQuery{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestHistorySearchIsLiteral(t *testing.T) {
	f := newFixture(t)
	item := f.menuItem(t, "Es Kopi Susu", models.CategoryCoffee, 15000)

	done := f.order(t, f.customer, cart(t, `[{"id": %d}]`, item.ID))
	f.advance(t, done.ID, models.StatusCancelled)

	accented := f.user(t, "Ömer Ünal", "omer@example.com", auth.RoleCustomer)
	theirs := f.order(t, accented, cart(t, `[{"id": %d}]`, item.ID))
	f.advance(t, theirs.ID, models.StatusCancelled)

	for _, q := range []string{"%", "_", "b_di", `\`} {
		got, err := f.dashboard.History(f.ctx, f.admin, HistoryQuery{Q: q})
		require.NoError(t, err)
		assert.Empty(t, got, q)
	}

	got, err := f.dashboard.History(f.ctx, f.admin, HistoryQuery{Q: "ömer ü"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, theirs.ID, got[0].ID)
}

func TestParseBound(t *testing.T) {
	from, err := parseBound("2024-05-20", false)
	require.NoError(t, err)
	assert.True(t, from.Equal(time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)), "%s", from)

	to, err := parseBound("2024-05-20", true)
	require.NoError(t, err)
	assert.True(t, to.Equal(time.Date(2024, 5, 20, 23, 59, 59, 999999999, time.UTC)), "%s", to)

	ts, err := parseBound("2024-05-20T10:00:00+07:00", false)
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.Date(2024, 5, 20, 3, 0, 0, 0, time.UTC)), "%s", ts)

	none, err := parseBound(" ", true)
	require.NoError(t, err)
	assert.Nil(t, none)
}
