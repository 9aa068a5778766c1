package entities

import "time"

// SuperSet groups sets together. Deleting a superset deletes its child
// sets; their cards are reclaimed later by the orphan cleanup task.
type SuperSet struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200" json:"title"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Sets      []Set     `gorm:"foreignKey:SuperSetID" json:"sets"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Set is a named collection of cards. A nil SuperSetID means the set is
// top-level and shows up directly in the user's listing.
type Set struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:200" json:"title"`
	UserID     uint      `gorm:"index" json:"user_id"`
	SuperSetID *uint     `gorm:"index" json:"super_set_id,omitempty"`
	Cards      []Card    `gorm:"foreignKey:SetID" json:"cards"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Card is a term/body flashcard. Studied is reset per study cycle, never
// automatically.
type Card struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Term      string    `gorm:"size:500" json:"term"`
	Body      string    `gorm:"size:2000" json:"body"`
	UserID    uint      `gorm:"index" json:"user_id"`
	SetID     uint      `gorm:"index" json:"set_id"`
	Studied   bool      `gorm:"default:false" json:"studied"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SharedSet grants another account read access to a set, addressed by the
// receiver's email so sets can be shared before the receiver registers.
type SharedSet struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SetID         uint      `gorm:"index" json:"set_id"`
	OwnerID       uint      `gorm:"index" json:"owner_id"`
	ReceiverEmail string    `gorm:"index;size:255" json:"receiver_email"`
	CreatedAt     time.Time `json:"created_at"`
}
