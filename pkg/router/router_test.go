package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }

func TestGroupMiddlewareAndNames(t *testing.T) {
	r := New()
	var hits []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				hits = append(hits, name)
				next.ServeHTTP(w, req)
			})
		}
	}

	admin := r.Group("/admin", tag("group"))
	admin.Patch("/orders/{id}", "admin.orders.update", ok, tag("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/admin/orders/3", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"group", "route"}, hits)

	url, err := r.URL("admin.orders.update", map[string]string{"id": "3"})
	require.NoError(t, err)
	assert.Equal(t, "/admin/orders/3", url)

	_, err = r.URL("admin.orders.update", nil)
	assert.Error(t, err)
}

func TestRoutesListing(t *testing.T) {
	r := New()
	r.Get("/menu", "menu.index", ok)
	r.Delete("/menu/{id}", "menu.destroy", ok)
	r.Put("/users/{id}", "", ok)
	r.Handle("/storage/*", "storage", http.HandlerFunc(ok))

	routes := r.Routes()
	require.Len(t, routes, 4)
	assert.Equal(t, RouteInfo{Method: http.MethodGet, Path: "/menu", Name: "menu.index"}, routes[0])
	assert.Equal(t, "/storage/*", routes[2].Path)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/storage/menu/a.png", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestNotFoundIsJSON(t *testing.T) {
	r := New()
	r.Get("/menu", "", ok)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/menu", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
