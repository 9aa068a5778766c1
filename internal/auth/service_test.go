package auth

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/flashlearn/flashlearn/internal/config"
	"github.com/flashlearn/flashlearn/internal/database/users"
	"github.com/flashlearn/flashlearn/internal/entities"
)

func setupService(t *testing.T) (*Service, func()) {
	dbPath := "./test_auth_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{})
	require.NoError(t, err)

	svc := NewService(users.NewRepository(db), config.Auth{
		BcryptCost: bcrypt.MinCost,
	})

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return svc, cleanup
}

func TestService_Register(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	user, err := svc.Register("ana", "ana@x.com", "pw1")

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "ana@x.com", user.Email)
	assert.NotEqual(t, "pw1", user.PasswordHash)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	_, err := svc.Register("ana", "ana@x.com", "pw1")
	require.NoError(t, err)

	_, err = svc.Register("other", "ana@x.com", "pw2")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestService_Register_InvalidEmail(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	_, err := svc.Register("ana", "not-an-email", "pw1")
	assert.ErrorIs(t, err, ErrEmailInvalid)
}

func TestService_Login_ByEmailAndName(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	created, err := svc.Register("ana", "ana@x.com", "pw1")
	require.NoError(t, err)

	byEmail, err := svc.Login("ana@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byName, err := svc.Login("ana", "pw1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	_, err := svc.Register("ana", "ana@x.com", "pw1")
	require.NoError(t, err)

	_, err = svc.Login("ana", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownIdentifier(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	_, err := svc.Login("ghost", "pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_EmailMatchBeatsNameMatch(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	// "bob@x.com" is one account's display name and another's email.
	_, err := svc.Register("bob@x.com", "bob@other.com", "name-pw")
	require.NoError(t, err)
	byEmail, err := svc.Register("bob", "bob@x.com", "email-pw")
	require.NoError(t, err)

	found, err := svc.Login("bob@x.com", "email-pw")
	require.NoError(t, err)
	assert.Equal(t, byEmail.ID, found.ID)

	// The name-matched account is still reachable with its own password.
	_, err = svc.Login("bob@x.com", "name-pw")
	require.NoError(t, err)
}

func TestService_ChangePassword(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	_, err := svc.Register("ana", "ana@x.com", "pw1")
	require.NoError(t, err)

	err = svc.ChangePassword("ana@x.com", "pw1", "pw2")
	require.NoError(t, err)

	_, err = svc.Login("ana@x.com", "pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login("ana@x.com", "pw2")
	assert.NoError(t, err)
}

func TestService_ChangePassword_WrongOldPassword(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	_, err := svc.Register("ana", "ana@x.com", "pw1")
	require.NoError(t, err)

	err = svc.ChangePassword("ana@x.com", "wrong", "pw2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Password unchanged
	_, err = svc.Login("ana@x.com", "pw1")
	assert.NoError(t, err)
}

func TestService_HasUsers(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	has, err := svc.HasUsers()
	require.NoError(t, err)
	assert.False(t, has)

	_, err = svc.Register("ana", "ana@x.com", "pw1")
	require.NoError(t, err)

	has, err = svc.HasUsers()
	require.NoError(t, err)
	assert.True(t, has)
}
