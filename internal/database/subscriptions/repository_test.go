package subscriptions

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/openshelf/openshelf/internal/database"
	"github.com/openshelf/openshelf/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db.DB
}

func seedUser(t *testing.T, db *gorm.DB, email string) *entities.User {
	t.Helper()
	user := &entities.User{Name: "Reader", Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *entities.Category {
	t.Helper()
	category := &entities.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func TestRepository_UpsertKeepsSingleRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	user := seedUser(t, db, "reader@example.com")
	category := seedCategory(t, db, "Fiction")

	firstExpiry := today().AddDate(0, 0, 30)
	require.NoError(t, repo.Upsert(user.ID, category.ID, firstExpiry))

	// Re-subscribing extends the window instead of adding a second row
	laterExpiry := today().AddDate(0, 0, 60)
	require.NoError(t, repo.Upsert(user.ID, category.ID, laterExpiry))

	count, err := repo.CountForPair(user.ID, category.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	active, err := repo.ActiveForUser(user.ID, today())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, laterExpiry.Format("2006-01-02"), active[0].ExpiryDate.Format("2006-01-02"))
}

func TestRepository_ActiveForUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	user := seedUser(t, db, "reader@example.com")
	fiction := seedCategory(t, db, "Fiction")
	science := seedCategory(t, db, "Science")

	require.NoError(t, repo.Upsert(user.ID, fiction.ID, today().AddDate(0, 0, 30)))
	require.NoError(t, repo.Upsert(user.ID, science.ID, today().AddDate(0, 0, -1)))

	active, err := repo.ActiveForUser(user.ID, today())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, fiction.ID, active[0].CategoryID)

	t.Run("expiring today still counts", func(t *testing.T) {
		require.NoError(t, repo.Upsert(user.ID, science.ID, today()))
		active, err := repo.ActiveForUser(user.ID, today())
		require.NoError(t, err)
		assert.Len(t, active, 2)
	})
}

func TestRepository_HasActiveForBook(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	user := seedUser(t, db, "reader@example.com")
	fiction := seedCategory(t, db, "Fiction")
	science := seedCategory(t, db, "Science")

	publisher := &entities.Publisher{Name: "Press", Email: "press@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(publisher).Error)
	fictionBook := &entities.Book{Title: "A", Author: "B", PublisherID: publisher.ID, CategoryID: &fiction.ID}
	scienceBook := &entities.Book{Title: "C", Author: "D", PublisherID: publisher.ID, CategoryID: &science.ID}
	uncategorized := &entities.Book{Title: "E", Author: "F", PublisherID: publisher.ID}
	require.NoError(t, db.Create(fictionBook).Error)
	require.NoError(t, db.Create(scienceBook).Error)
	require.NoError(t, db.Create(uncategorized).Error)

	require.NoError(t, repo.Upsert(user.ID, fiction.ID, today().AddDate(0, 0, 30)))

	t.Run("covered category", func(t *testing.T) {
		ok, err := repo.HasActiveForBook(user.ID, fictionBook.ID, today())
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("uncovered category", func(t *testing.T) {
		ok, err := repo.HasActiveForBook(user.ID, scienceBook.ID, today())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("uncategorized book is never covered", func(t *testing.T) {
		ok, err := repo.HasActiveForBook(user.ID, uncategorized.ID, today())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired subscription does not cover", func(t *testing.T) {
		require.NoError(t, repo.Upsert(user.ID, fiction.ID, today().AddDate(0, 0, -1)))
		ok, err := repo.HasActiveForBook(user.ID, fictionBook.ID, today())
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRepository_Remove(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	user := seedUser(t, db, "reader@example.com")
	category := seedCategory(t, db, "Fiction")

	require.NoError(t, repo.Upsert(user.ID, category.ID, today().AddDate(0, 0, 30)))
	require.NoError(t, repo.Remove(user.ID, category.ID))

	count, err := repo.CountForPair(user.ID, category.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, repo.Remove(user.ID, category.ID), gorm.ErrRecordNotFound)
}
