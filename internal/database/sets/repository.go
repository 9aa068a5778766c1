// Package sets provides database operations for sets and supersets,
// including nested population: a set carries its cards, a superset
// carries its sets with their cards.
//
// # Usage
//
//	repo := sets.NewRepository(db)
//	set, err := repo.CreateSet("Irregular verbs", userID, nil)
package sets

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/flashlearn/flashlearn/internal/entities"
)

var (
	ErrSetNotFound      = errors.New("set not found")
	ErrSuperSetNotFound = errors.New("superset not found")
)

// Repository handles all set and superset database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new sets repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateSet creates a set for a user. A nil superSetID makes it a
// top-level set. The generated id is backfilled by the engine, so no
// re-select by title is needed.
func (r *Repository) CreateSet(title string, userID uint, superSetID *uint) (*entities.Set, error) {
	set := &entities.Set{
		Title:      title,
		UserID:     userID,
		SuperSetID: superSetID,
		Cards:      []entities.Card{},
	}
	if err := r.db.Create(set).Error; err != nil {
		return nil, err
	}
	return set, nil
}

// CreateSuperSet creates a superset for a user.
func (r *Repository) CreateSuperSet(title string, userID uint) (*entities.SuperSet, error) {
	superSet := &entities.SuperSet{
		Title:  title,
		UserID: userID,
		Sets:   []entities.Set{},
	}
	if err := r.db.Create(superSet).Error; err != nil {
		return nil, err
	}
	return superSet, nil
}

// GetSet retrieves a set with its cards in insertion order.
func (r *Repository) GetSet(id uint) (*entities.Set, error) {
	var set entities.Set
	err := r.db.Preload("Cards", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&set, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSetNotFound
		}
		return nil, err
	}
	return &set, nil
}

// GetSuperSet retrieves a superset with its sets and their cards.
func (r *Repository) GetSuperSet(id uint) (*entities.SuperSet, error) {
	var superSet entities.SuperSet
	err := r.db.Preload("Sets", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Preload("Sets.Cards", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&superSet, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSuperSetNotFound
		}
		return nil, err
	}
	return &superSet, nil
}

// GetUserSets returns the user's top-level sets, populated. Sets nested
// under a superset are excluded so the listing does not show them twice.
func (r *Repository) GetUserSets(userID uint) ([]entities.Set, error) {
	var sets []entities.Set
	err := r.db.Preload("Cards", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Where("user_id = ? AND super_set_id IS NULL", userID).
		Order("id ASC").Find(&sets).Error
	return sets, err
}

// GetUserSuperSets returns all supersets owned by the user, populated.
func (r *Repository) GetUserSuperSets(userID uint) ([]entities.SuperSet, error) {
	var superSets []entities.SuperSet
	err := r.db.Preload("Sets", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Preload("Sets.Cards", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Where("user_id = ?", userID).Order("id ASC").Find(&superSets).Error
	return superSets, err
}

// GetSubsets returns the sets nested under a superset, populated.
func (r *Repository) GetSubsets(superSetID uint) ([]entities.Set, error) {
	var sets []entities.Set
	err := r.db.Preload("Cards", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Where("super_set_id = ?", superSetID).Order("id ASC").Find(&sets).Error
	return sets, err
}

// RenameSet updates a set's title and returns the repopulated set.
func (r *Repository) RenameSet(id uint, newTitle string) (*entities.Set, error) {
	result := r.db.Model(&entities.Set{}).Where("id = ?", id).Update("title", newTitle)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrSetNotFound
	}
	return r.GetSet(id)
}

// RenameSuperSet updates a superset's title and returns the repopulated
// superset.
func (r *Repository) RenameSuperSet(id uint, newTitle string) (*entities.SuperSet, error) {
	result := r.db.Model(&entities.SuperSet{}).Where("id = ?", id).Update("title", newTitle)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrSuperSetNotFound
	}
	return r.GetSuperSet(id)
}

// DeleteSet removes a set. The row is verified gone before reporting
// success.
func (r *Repository) DeleteSet(id uint) error {
	if err := r.db.Delete(&entities.Set{}, id).Error; err != nil {
		return err
	}
	return r.verifyGone(&entities.Set{}, id)
}

// DeleteSuperSet removes a superset and all its child sets in one
// transaction. Cards of the deleted sets are left behind on purpose and
// reclaimed by the scheduled orphan cleanup.
func (r *Repository) DeleteSuperSet(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("super_set_id = ?", id).Delete(&entities.Set{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.SuperSet{}, id).Error
	})
	if err != nil {
		return err
	}
	return r.verifyGone(&entities.SuperSet{}, id)
}

// verifyGone checks the post-delete invariant that no row with the given
// id remains.
func (r *Repository) verifyGone(model any, id uint) error {
	var count int64
	if err := r.db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count != 0 {
		return fmt.Errorf("row %d still present after delete", id)
	}
	return nil
}
