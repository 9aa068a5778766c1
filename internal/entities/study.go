package entities

import "time"

// StudySession is one traversal over a set's unstudied cards. EndedAt is
// nil while the session is in progress.
type StudySession struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index" json:"user_id"`
	SetID     uint       `gorm:"index" json:"set_id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// SessionCard records one answered card within a session.
type SessionCard struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID uint      `gorm:"index" json:"session_id"`
	CardID    uint      `gorm:"index" json:"card_id"`
	Correct   bool      `json:"correct"`
	CreatedAt time.Time `json:"created_at"`
}
