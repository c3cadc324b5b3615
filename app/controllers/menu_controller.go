package controllers

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/ruangkopi/cafe/app/services"
	"github.com/ruangkopi/cafe/config"
	"github.com/ruangkopi/cafe/pkg/ctx"
)

// formOverhead is the multipart allowance on top of the image itself.
const formOverhead = 1 << 20

type MenuController struct {
	menu *services.MenuService
}

// Index handles GET /menu[?category=].
func (m *MenuController) Index(c *ctx.Context) {
	items, err := m.menu.List(c.Context(), c.Query("category"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(items)
}

// Show handles GET /menu/{id}.
func (m *MenuController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	item, err := m.menu.Get(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(item)
}

// Store handles POST /menu, multipart or JSON.
func (m *MenuController) Store(c *ctx.Context) {
	in, img, ok := m.input(c)
	if !ok {
		return
	}
	defer closeUpload(img)

	item, err := m.menu.Create(c.Context(), identity(c), in, img)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(item)
}

// Update handles PATCH /menu/{id}.
func (m *MenuController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	in, img, ok := m.input(c)
	if !ok {
		return
	}
	defer closeUpload(img)

	item, err := m.menu.Update(c.Context(), identity(c), id, in, img)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(item)
}

// Destroy handles DELETE /menu/{id}.
func (m *MenuController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	if err := m.menu.Delete(c.Context(), identity(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Menu item deleted"})
}

// input reads a MenuInput from a multipart form (with an optional "image"
// file) or a JSON body.
func (m *MenuController) input(c *ctx.Context) (services.MenuInput, *services.Upload, bool) {
	var in services.MenuInput

	mediaType, _, _ := mime.ParseMediaType(c.R.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		if !c.BindJSON(&in) {
			return in, nil, false
		}
		return in, nil, true
	}

	limit := config.MaxUploadBytes()
	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, limit+formOverhead)
	if err := c.R.ParseMultipartForm(limit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.Error(http.StatusBadRequest, "Image is too large")
		} else {
			c.Error(http.StatusBadRequest, "Invalid form data")
		}
		return in, nil, false
	}

	form := c.R.MultipartForm
	in.Name = formValue(form, "name")
	in.Description = formValue(form, "description")
	in.Category = formValue(form, "category")
	in.ImageURL = formValue(form, "imageUrl")
	if raw := formValue(form, "price"); raw != nil {
		price := services.FlexIntFromString(*raw)
		in.Price = &price
	}

	headers := form.File["image"]
	if len(headers) == 0 {
		return in, nil, true
	}
	fh := headers[0]
	file, err := fh.Open()
	if err != nil {
		c.Error(http.StatusBadRequest, "Invalid image upload")
		return in, nil, false
	}
	return in, &services.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        file,
	}, true
}

func closeUpload(img *services.Upload) {
	if img == nil {
		return
	}
	if cl, ok := img.Body.(io.Closer); ok {
		cl.Close()
	}
}

// formValue returns a pointer to the first value of key, or nil when the
// field was not sent.
func formValue(form *multipart.Form, key string) *string {
	vals, ok := form.Value[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	v := strings.TrimSpace(vals[0])
	return &v
}
