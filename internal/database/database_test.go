package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf/internal/entities"
)

func TestNewDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "store.db")

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should exist on disk")

	// Every table from the schema is queryable after migration
	for _, model := range []any{
		&entities.User{}, &entities.Publisher{}, &entities.Admin{},
		&entities.Category{}, &entities.Book{},
		&entities.Subscription{}, &entities.Bookmark{}, &entities.ReadingHistoryEntry{},
	} {
		var count int64
		assert.NoError(t, db.DB.Model(model).Count(&count).Error)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	db, err := NewDatabase(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	defer db.Close()

	publisher := &entities.Publisher{Name: "Press", Email: "press@example.com", PasswordHash: "x"}
	require.NoError(t, db.DB.Create(publisher).Error)
	book := &entities.Book{Title: "A", Author: "B", PublisherID: publisher.ID}
	require.NoError(t, db.DB.Create(book).Error)

	// Deleting the publisher cascades to its books
	require.NoError(t, db.DB.Delete(&entities.Publisher{}, publisher.ID).Error)

	var count int64
	require.NoError(t, db.DB.Model(&entities.Book{}).Count(&count).Error)
	assert.Zero(t, count)
}
