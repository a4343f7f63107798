package loader

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestLoadDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.db")

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)").Error)
	require.NoError(t, db.Exec("INSERT INTO users (id, name) VALUES (1, 'alice')").Error)
	require.NoError(t, db.Exec("INSERT INTO users (id, name) VALUES (2, 'bob')").Error)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	docs, err := createTestLoader().LoadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, path+"#users", doc.Source)
	assert.Contains(t, doc.Content, "Table: users")
	assert.Contains(t, doc.Content, "Columns: id, name")
	assert.Contains(t, doc.Content, "Rows:\n")
	assert.Contains(t, doc.Content, "(1, alice)")
	assert.Contains(t, doc.Content, "(2, bob)")
}

func TestLoadDatabase_EmptyDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.sqlite")

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = createTestLoader().LoadFile(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tables")
}
