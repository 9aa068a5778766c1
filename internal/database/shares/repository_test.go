package shares

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/flashlearn/flashlearn/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	dbPath := "./test_shares_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Set{}, &entities.Card{}, &entities.SharedSet{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func TestRepository_ShareSet(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	set := entities.Set{Title: "Spanish", UserID: 1}
	require.NoError(t, db.Create(&set).Error)

	share, err := repo.ShareSet(set.ID, 1, "friend@x.com")
	require.NoError(t, err)
	assert.NotZero(t, share.ID)

	_, err = repo.ShareSet(set.ID, 1, "friend@x.com")
	assert.ErrorIs(t, err, ErrAlreadyShared)
}

func TestRepository_SetsSharedWith(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	set := entities.Set{Title: "Spanish", UserID: 1}
	require.NoError(t, db.Create(&set).Error)
	require.NoError(t, db.Create(&entities.Card{Term: "hola", Body: "hello", UserID: 1, SetID: set.ID}).Error)

	_, err := repo.ShareSet(set.ID, 1, "friend@x.com")
	require.NoError(t, err)

	shared, err := repo.SetsSharedWith("friend@x.com")
	require.NoError(t, err)
	require.Len(t, shared, 1)
	assert.Equal(t, "Spanish", shared[0].Title)
	assert.Len(t, shared[0].Cards, 1)

	none, err := repo.SetsSharedWith("stranger@x.com")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepository_SetsSharedWith_SkipsDeletedSets(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	set := entities.Set{Title: "Doomed", UserID: 1}
	require.NoError(t, db.Create(&set).Error)
	_, err := repo.ShareSet(set.ID, 1, "friend@x.com")
	require.NoError(t, err)

	require.NoError(t, db.Delete(&entities.Set{}, set.ID).Error)

	shared, err := repo.SetsSharedWith("friend@x.com")
	require.NoError(t, err)
	assert.Empty(t, shared)
}

func TestRepository_Unshare(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	set := entities.Set{Title: "Spanish", UserID: 1}
	require.NoError(t, db.Create(&set).Error)
	_, err := repo.ShareSet(set.ID, 1, "friend@x.com")
	require.NoError(t, err)

	require.NoError(t, repo.Unshare(set.ID, "friend@x.com"))

	err = repo.Unshare(set.ID, "friend@x.com")
	assert.ErrorIs(t, err, ErrShareNotFound)

	shares, err := repo.SharesForSet(set.ID)
	require.NoError(t, err)
	assert.Empty(t, shares)
}
