// Package testdb opens a migrated, isolated in-memory SQLite database for
// package tests.
package testdb

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "github.com/ruangkopi/cafe/database/migrations"
	"github.com/ruangkopi/cafe/pkg/database"
	"github.com/ruangkopi/cafe/pkg/migration"
)

// Open returns a fresh database with every migration applied. Each call gets
// its own named in-memory database, dropped when the test ends.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, migration.New(db, nil).Run())
	return db
}
