package publishers

import (
	"path/filepath"
	"testing"

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

func TestRepository_CreateAndLookup(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	publisher := &entities.Publisher{
		Name: "Orbit", Email: "orbit@example.com", PasswordHash: "hash",
		Address: "1 Book Street", ImagePath: "publishers/orbit.jpg",
	}
	require.NoError(t, repo.Create(publisher))
	assert.NotZero(t, publisher.ID)

	t.Run("duplicate email is rejected", func(t *testing.T) {
		err := repo.Create(&entities.Publisher{Name: "Clone", Email: "orbit@example.com", PasswordHash: "x"})
		assert.Error(t, err)
	})

	t.Run("lookup by email", func(t *testing.T) {
		found, err := repo.GetByEmail("orbit@example.com")
		require.NoError(t, err)
		assert.Equal(t, publisher.ID, found.ID)
	})

	t.Run("public details omit credentials", func(t *testing.T) {
		details, err := repo.GetPublicDetails(publisher.ID)
		require.NoError(t, err)
		assert.Equal(t, "Orbit", details.Name)
		assert.Equal(t, "1 Book Street", details.Address)
		assert.Equal(t, "publishers/orbit.jpg", details.ImagePath)
	})

	t.Run("public details of missing publisher", func(t *testing.T) {
		_, err := repo.GetPublicDetails(9999)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestRepository_UpdateByAdmin(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	publisher := &entities.Publisher{Name: "Orbit", Email: "orbit@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(publisher))

	require.NoError(t, repo.UpdateByAdmin(publisher.ID, "Orbit Press", "555-0100", "2 Book Street", "Sci-fi"))

	updated, err := repo.GetByID(publisher.ID)
	require.NoError(t, err)
	assert.Equal(t, "Orbit Press", updated.Name)
	assert.Equal(t, "2 Book Street", updated.Address)
	// Email and credentials are not admin-editable
	assert.Equal(t, "orbit@example.com", updated.Email)
	assert.Equal(t, "hash", updated.PasswordHash)

	assert.ErrorIs(t, repo.UpdateByAdmin(9999, "X", "", "", ""), gorm.ErrRecordNotFound)
}

func TestRepository_DeleteCollectsOrphanedFiles(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	publisher := &entities.Publisher{
		Name: "Orbit", Email: "orbit@example.com", PasswordHash: "hash",
		ImagePath: "publishers/orbit.jpg",
	}
	require.NoError(t, repo.Create(publisher))

	withFiles := &entities.Book{
		Title: "A", Author: "B", PublisherID: publisher.ID,
		CoverPath: "covers/a.jpg", PDFPath: "pdfs/a.pdf",
	}
	bare := &entities.Book{Title: "C", Author: "D", PublisherID: publisher.ID}
	require.NoError(t, db.Create(withFiles).Error)
	require.NoError(t, db.Create(bare).Error)

	files, err := repo.Delete(publisher.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"covers/a.jpg"}, files.Covers)
	assert.Equal(t, []string{"pdfs/a.pdf"}, files.PDFs)
	assert.Equal(t, []string{"publishers/orbit.jpg"}, files.PublisherImages)

	t.Run("books cascade with the publisher", func(t *testing.T) {
		var count int64
		require.NoError(t, db.Model(&entities.Book{}).Where("publisher_id = ?", publisher.ID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("missing publisher", func(t *testing.T) {
		_, err := repo.Delete(9999)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
