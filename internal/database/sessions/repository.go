// Package sessions provides database operations for study session
// records: when a traversal started, when it ended, and which cards were
// answered along the way.
package sessions

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/flashlearn/flashlearn/internal/entities"
)

var ErrSessionNotFound = errors.New("study session not found")

// Stats summarizes the answers recorded during a session.
type Stats struct {
	Answered int64 `json:"answered"`
	Correct  int64 `json:"correct"`
}

// Repository handles study session database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new sessions repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// StartSession records the start of a traversal over a set.
func (r *Repository) StartSession(userID, setID uint) (*entities.StudySession, error) {
	session := &entities.StudySession{
		UserID:    userID,
		SetID:     setID,
		StartedAt: time.Now(),
	}
	if err := r.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// EndSession stamps the session's end time. Ending an already-ended
// session keeps the original timestamp.
func (r *Repository) EndSession(id uint) error {
	session, err := r.GetSession(id)
	if err != nil {
		return err
	}
	if session.EndedAt != nil {
		return nil
	}
	now := time.Now()
	return r.db.Model(session).Update("ended_at", now).Error
}

// GetSession retrieves a session by ID.
func (r *Repository) GetSession(id uint) (*entities.StudySession, error) {
	var session entities.StudySession
	err := r.db.First(&session, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// RecordCard stores one answered card for a session.
func (r *Repository) RecordCard(sessionID, cardID uint, correct bool) error {
	record := &entities.SessionCard{
		SessionID: sessionID,
		CardID:    cardID,
		Correct:   correct,
	}
	return r.db.Create(record).Error
}

// SessionStats returns answered/correct counts for a session.
func (r *Repository) SessionStats(sessionID uint) (*Stats, error) {
	var stats Stats
	err := r.db.Model(&entities.SessionCard{}).
		Where("session_id = ?", sessionID).Count(&stats.Answered).Error
	if err != nil {
		return nil, err
	}
	err = r.db.Model(&entities.SessionCard{}).
		Where("session_id = ? AND correct = ?", sessionID, true).
		Count(&stats.Correct).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// SessionsForUser lists a user's sessions, newest first.
func (r *Repository) SessionsForUser(userID uint) ([]entities.StudySession, error) {
	var sessions []entities.StudySession
	err := r.db.Where("user_id = ?", userID).
		Order("started_at DESC").Find(&sessions).Error
	return sessions, err
}
