package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDiskLifecycle(t *testing.T) {
	ctx := context.Background()
	disk, err := NewLocalDisk(t.TempDir(), "http://localhost:8080/storage/")
	require.NoError(t, err)

	key := NewKey("menu", ".PNG")
	assert.True(t, strings.HasPrefix(key, "menu/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	require.NoError(t, disk.Put(ctx, key, strings.NewReader("img"), "image/png"))
	ok, err := disk.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "http://localhost:8080/storage/"+key, disk.URL(key))

	srv := disk.FileServer("/storage")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/storage/"+key, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, "img", string(body))

	require.NoError(t, disk.Delete(ctx, key))
	require.NoError(t, disk.Delete(ctx, key), "deleting twice is fine")
	ok, err = disk.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalDiskRejectsTraversal(t *testing.T) {
	disk, err := NewLocalDisk(t.TempDir(), "")
	require.NoError(t, err)

	// Cleaned against a virtual root, so this stays inside the disk.
	k, err := cleanKey("../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, "etc/passwd", k)

	err = disk.Put(context.Background(), "", strings.NewReader("x"), "")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestFileServerHidesDirectories(t *testing.T) {
	disk, err := NewLocalDisk(t.TempDir(), "")
	require.NoError(t, err)
	require.NoError(t, disk.Put(context.Background(), "menu/a.png", strings.NewReader("x"), ""))

	rec := httptest.NewRecorder()
	disk.FileServer("/storage").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/storage/menu/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
