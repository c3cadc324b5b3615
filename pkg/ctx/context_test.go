package ctx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/ruangkopi/cafe/pkg/auth"
	appctx "github.com/ruangkopi/cafe/pkg/ctx"
)

func TestSuccessWritesBareJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.Success(map[string]any{"id": 1})
	})(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())
}

func TestErrorShape(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.Error(http.StatusNotFound, "Order not found")
		assert.Equal(t, http.StatusNotFound, c.WrittenStatus())
	})(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Order not found"}`, rec.Body.String())
}

func TestParamUint(t *testing.T) {
	r := chi.NewRouter()
	var got uint
	r.Get("/orders/{id}", appctx.Wrap(func(c *appctx.Context) {
		id, ok := c.ParamUint("id")
		if !ok {
			return
		}
		got = id
		c.Success(nil)
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/42", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(42), got)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid ID format")
}

func TestQueryUint(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		v, ok := c.QueryUint("menuItemId")
		assert.True(t, ok)
		if assert.NotNil(t, v) {
			assert.Equal(t, uint(7), *v)
		}
		missing, ok := c.QueryUint("orderId")
		assert.True(t, ok)
		assert.Nil(t, missing)
	})(rec, httptest.NewRequest(http.MethodGet, "/?menuItemId=7", nil))

	rec = httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		_, ok := c.QueryUint("orderId")
		assert.False(t, ok)
	})(rec, httptest.NewRequest(http.MethodGet, "/?orderId=x", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBindJSON(t *testing.T) {
	type input struct {
		Email string `json:"email" validate:"required,email"`
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co"}`))
	appctx.Wrap(func(c *appctx.Context) {
		var in input
		assert.True(t, c.BindJSON(&in))
		assert.Equal(t, "a@b.co", in.Email)
	})(rec, req)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope"}`))
	appctx.Wrap(func(c *appctx.Context) {
		var in input
		assert.False(t, c.BindJSON(&in))
	})(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "valid email")

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{bad`))
	appctx.Wrap(func(c *appctx.Context) {
		var in input
		assert.False(t, c.BindJSON(&in))
	})(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{UserID: 3, Role: auth.RoleAdmin}))
	appctx.Wrap(func(c *appctx.Context) {
		id, ok := c.Identity()
		assert.True(t, ok)
		assert.Equal(t, uint(3), id.UserID)
		assert.True(t, id.IsAdmin())
	})(httptest.NewRecorder(), req)
}
