package cards

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
	dbPath := "./test_cards_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.User{},
		&entities.SuperSet{},
		&entities.Set{},
		&entities.Card{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func strPtr(s string) *string { return &s }

func TestRepository_AddCardToSet(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	card, err := repo.AddCardToSet(1, 1, "perro", "dog")

	require.NoError(t, err)
	assert.NotZero(t, card.ID)
	assert.False(t, card.Studied)

	got, err := repo.GetCard(card.ID)
	require.NoError(t, err)
	assert.Equal(t, "perro", got.Term)
	assert.Equal(t, "dog", got.Body)
	assert.False(t, got.Studied)
}

func TestRepository_GetCard_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetCard(42)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestRepository_EditCard(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	card, err := repo.AddCardToSet(1, 1, "perro", "dog")
	require.NoError(t, err)

	edited, err := repo.EditCard(card.ID, strPtr("gato"), nil)
	require.NoError(t, err)
	assert.Equal(t, "gato", edited.Term)
	assert.Equal(t, "dog", edited.Body)

	edited, err = repo.EditCard(card.ID, nil, strPtr("cat"))
	require.NoError(t, err)
	assert.Equal(t, "gato", edited.Term)
	assert.Equal(t, "cat", edited.Body)
}

func TestRepository_EditCard_NothingToEdit(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	card, err := repo.AddCardToSet(1, 1, "perro", "dog")
	require.NoError(t, err)

	_, err = repo.EditCard(card.ID, nil, nil)
	assert.ErrorIs(t, err, ErrNothingToEdit)
}

func TestRepository_DeleteCard(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	card, err := repo.AddCardToSet(1, 1, "perro", "dog")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteCard(card.ID))

	_, err = repo.GetCard(card.ID)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestRepository_MarkStudied(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	card, err := repo.AddCardToSet(1, 1, "perro", "dog")
	require.NoError(t, err)

	studied, err := repo.MarkStudied(card.ID)
	require.NoError(t, err)
	assert.True(t, studied.Studied)

	got, err := repo.GetCard(card.ID)
	require.NoError(t, err)
	assert.True(t, got.Studied)
}

func TestRepository_UnstudiedCards_ExcludesStudied(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	first, err := repo.AddCardToSet(1, 1, "a", "1")
	require.NoError(t, err)
	second, err := repo.AddCardToSet(1, 1, "b", "2")
	require.NoError(t, err)

	_, err = repo.MarkStudied(first.ID)
	require.NoError(t, err)

	unstudied, err := repo.UnstudiedCards(1)
	require.NoError(t, err)
	require.Len(t, unstudied, 1)
	assert.Equal(t, second.ID, unstudied[0].ID)
}

func TestRepository_ResetStudied(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	card, err := repo.AddCardToSet(1, 1, "a", "1")
	require.NoError(t, err)
	_, err = repo.MarkStudied(card.ID)
	require.NoError(t, err)

	require.NoError(t, repo.ResetStudied(1))

	unstudied, err := repo.UnstudiedCards(1)
	require.NoError(t, err)
	assert.Len(t, unstudied, 1)
}

func TestRepository_DeleteOrphanCards(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	set := entities.Set{Title: "kept", UserID: 1}
	require.NoError(t, db.Create(&set).Error)

	kept, err := repo.AddCardToSet(set.ID, 1, "kept", "card")
	require.NoError(t, err)
	// Card pointing at a set id that was never created
	orphan, err := repo.AddCardToSet(set.ID+100, 1, "orphan", "card")
	require.NoError(t, err)

	deleted, err := repo.DeleteOrphanCards()
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.GetCard(kept.ID)
	assert.NoError(t, err)
	_, err = repo.GetCard(orphan.ID)
	assert.ErrorIs(t, err, ErrCardNotFound)
}
