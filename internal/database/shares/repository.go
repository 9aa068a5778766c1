// Package shares provides database operations for sets shared between
// accounts. Shares are addressed by the receiver's email so a set can be
// shared with someone who has not registered yet.
package shares

import (
	"errors"

	"gorm.io/gorm"

	"github.com/flashlearn/flashlearn/internal/entities"
)

var (
	ErrShareNotFound = errors.New("share not found")
	ErrAlreadyShared = errors.New("set already shared with this email")
)

// Repository handles shared-set database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new shares repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ShareSet grants the receiver read access to a set.
func (r *Repository) ShareSet(setID, ownerID uint, receiverEmail string) (*entities.SharedSet, error) {
	var existing entities.SharedSet
	err := r.db.Where("set_id = ? AND receiver_email = ?", setID, receiverEmail).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyShared
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	share := &entities.SharedSet{
		SetID:         setID,
		OwnerID:       ownerID,
		ReceiverEmail: receiverEmail,
	}
	if err := r.db.Create(share).Error; err != nil {
		return nil, err
	}
	return share, nil
}

// Unshare revokes a receiver's access to a set.
func (r *Repository) Unshare(setID uint, receiverEmail string) error {
	result := r.db.Where("set_id = ? AND receiver_email = ?", setID, receiverEmail).
		Delete(&entities.SharedSet{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrShareNotFound
	}
	return nil
}

// SetsSharedWith returns the populated sets shared with an email address.
// Shares whose set has since been deleted are skipped.
func (r *Repository) SetsSharedWith(email string) ([]entities.Set, error) {
	var shares []entities.SharedSet
	err := r.db.Where("receiver_email = ?", email).
		Order("id ASC").Find(&shares).Error
	if err != nil {
		return nil, err
	}

	sets := make([]entities.Set, 0, len(shares))
	for _, share := range shares {
		var set entities.Set
		err := r.db.Preload("Cards", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).First(&set, share.SetID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, nil
}

// SharesForSet lists the shares granted on a set.
func (r *Repository) SharesForSet(setID uint) ([]entities.SharedSet, error) {
	var shares []entities.SharedSet
	err := r.db.Where("set_id = ?", setID).Order("id ASC").Find(&shares).Error
	return shares, err
}
