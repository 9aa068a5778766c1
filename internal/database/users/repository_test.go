package users

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

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_users_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func TestRepository_CreateUser(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	user, err := repo.CreateUser("ana", "ana@x.com", "hash")

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "ana", user.Name)
	assert.Equal(t, "ana@x.com", user.Email)
}

func TestRepository_CreateUser_DuplicateEmail(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.CreateUser("ana", "ana@x.com", "hash")
	require.NoError(t, err)

	_, err = repo.CreateUser("other", "ana@x.com", "hash")
	assert.Error(t, err)
}

func TestRepository_GetUserByIdentifier(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	created, err := repo.CreateUser("ana", "ana@x.com", "hash")
	require.NoError(t, err)

	byEmail, err := repo.GetUserByIdentifier("ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byName, err := repo.GetUserByIdentifier("ana")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
}

func TestRepository_GetUserByIdentifier_EmailWins(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	// One account's name is another account's email
	byName, err := repo.CreateUser("bob@x.com", "bob@other.com", "hash")
	require.NoError(t, err)
	byEmail, err := repo.CreateUser("bob", "bob@x.com", "hash")
	require.NoError(t, err)

	found, err := repo.GetUserByIdentifier("bob@x.com")
	require.NoError(t, err)
	assert.Equal(t, byEmail.ID, found.ID)
	assert.NotEqual(t, byName.ID, found.ID)
}

func TestRepository_GetUserByIdentifier_Unknown(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetUserByIdentifier("ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepository_UpdatePasswordHash(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	user, err := repo.CreateUser("ana", "ana@x.com", "old-hash")
	require.NoError(t, err)

	err = repo.UpdatePasswordHash(user.ID, "new-hash")
	require.NoError(t, err)

	updated, err := repo.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", updated.PasswordHash)
}

func TestRepository_UpdatePasswordHash_MissingUser(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.UpdatePasswordHash(12345, "hash")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepository_CountUsers(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	count, err := repo.CountUsers()
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = repo.CreateUser("ana", "ana@x.com", "hash")
	require.NoError(t, err)

	count, err = repo.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
