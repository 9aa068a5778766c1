// Package cards provides database operations for flashcards, including
// the studied flag that drives study-session traversal.
package cards

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/flashlearn/flashlearn/internal/entities"
)

var (
	ErrCardNotFound = errors.New("card not found")
	// ErrNothingToEdit is returned when an edit supplies neither a new
	// term nor a new body.
	ErrNothingToEdit = errors.New("nothing to edit")
)

// Repository handles all card database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new cards repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddCardToSet creates a card in a set. New cards start unstudied.
func (r *Repository) AddCardToSet(setID, userID uint, term, body string) (*entities.Card, error) {
	card := &entities.Card{
		Term:   term,
		Body:   body,
		UserID: userID,
		SetID:  setID,
	}
	if err := r.db.Create(card).Error; err != nil {
		return nil, err
	}
	return card, nil
}

// GetCard retrieves a card by ID.
func (r *Repository) GetCard(id uint) (*entities.Card, error) {
	var card entities.Card
	err := r.db.First(&card, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

// EditCard updates the term and/or body of a card. Nil fields are left
// unchanged; supplying neither is a validation failure.
func (r *Repository) EditCard(id uint, newTerm, newBody *string) (*entities.Card, error) {
	updates := map[string]any{}
	if newTerm != nil {
		updates["term"] = *newTerm
	}
	if newBody != nil {
		updates["body"] = *newBody
	}
	if len(updates) == 0 {
		return nil, ErrNothingToEdit
	}

	result := r.db.Model(&entities.Card{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrCardNotFound
	}
	return r.GetCard(id)
}

// DeleteCard removes a card and verifies the row is gone.
func (r *Repository) DeleteCard(id uint) error {
	if err := r.db.Delete(&entities.Card{}, id).Error; err != nil {
		return err
	}
	var count int64
	if err := r.db.Model(&entities.Card{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count != 0 {
		return fmt.Errorf("card %d still present after delete", id)
	}
	return nil
}

// MarkStudied sets the studied flag and returns the updated card.
func (r *Repository) MarkStudied(id uint) (*entities.Card, error) {
	result := r.db.Model(&entities.Card{}).Where("id = ?", id).Update("studied", true)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrCardNotFound
	}
	return r.GetCard(id)
}

// UnstudiedCards returns the cards of a set with studied = false.
func (r *Repository) UnstudiedCards(setID uint) ([]entities.Card, error) {
	var cards []entities.Card
	err := r.db.Where("set_id = ? AND studied = ?", setID, false).
		Order("id ASC").Find(&cards).Error
	return cards, err
}

// ResetStudied clears the studied flag for every card in a set, starting
// a fresh study cycle.
func (r *Repository) ResetStudied(setID uint) error {
	return r.db.Model(&entities.Card{}).Where("set_id = ?", setID).
		Update("studied", false).Error
}

// DeleteOrphanCards removes cards whose set no longer exists. Superset
// deletion cascades to sets only, so this runs periodically from the
// task queue.
func (r *Repository) DeleteOrphanCards() (int64, error) {
	result := r.db.Exec(`
		DELETE FROM cards
		WHERE set_id NOT IN (SELECT id FROM sets)
	`)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
