// Package study implements study-session traversal: pick a random
// unstudied card, mark cards studied as they are answered, and report
// exhaustion once no unstudied cards remain in the set.
package study

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/flashlearn/flashlearn/internal/entities"
)

// ErrSetExhausted signals that no unstudied cards remain in the set.
var ErrSetExhausted = errors.New("no unstudied cards remain in set")

// Rand supplies randomness for card selection. Production uses math/rand;
// tests inject a seeded source for deterministic traversal.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a production randomness source seeded with the given
// value.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// CardStore is the subset of the cards repository the traversal needs.
type CardStore interface {
	GetCard(id uint) (*entities.Card, error)
	MarkStudied(id uint) (*entities.Card, error)
	UnstudiedCards(setID uint) ([]entities.Card, error)
	ResetStudied(setID uint) error
}

// SessionStore records traversal lifecycle and answers.
type SessionStore interface {
	StartSession(userID, setID uint) (*entities.StudySession, error)
	EndSession(id uint) error
	RecordCard(sessionID, cardID uint, correct bool) error
}

// Service drives the study state machine over the card and session
// stores.
type Service struct {
	cards    CardStore
	sessions SessionStore
	rand     Rand
}

// NewService creates a study service with an injected randomness source.
func NewService(cards CardStore, sessions SessionStore, rnd Rand) *Service {
	return &Service{cards: cards, sessions: sessions, rand: rnd}
}

// StartSession opens a session over a set and returns it with the first
// card to show. Starting on a set with no unstudied cards returns
// ErrSetExhausted without creating a session row.
func (s *Service) StartSession(userID, setID uint) (*entities.StudySession, *entities.Card, error) {
	card, err := s.NextCard(setID)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.sessions.StartSession(userID, setID)
	if err != nil {
		return nil, nil, fmt.Errorf("start session: %w", err)
	}
	return session, card, nil
}

// NextCard picks a uniformly random unstudied card from a set.
func (s *Service) NextCard(setID uint) (*entities.Card, error) {
	remaining, err := s.cards.UnstudiedCards(setID)
	if err != nil {
		return nil, err
	}
	if len(remaining) == 0 {
		return nil, ErrSetExhausted
	}
	card := remaining[s.rand.Intn(len(remaining))]
	return &card, nil
}

// NextAfterCard resolves the target set via the given card and picks the
// next unstudied card from it.
func (s *Service) NextAfterCard(cardID uint) (*entities.Card, error) {
	card, err := s.cards.GetCard(cardID)
	if err != nil {
		return nil, err
	}
	return s.NextCard(card.SetID)
}

// StudyCard marks a card studied, records the answer on the session, and
// advances. The returned card is nil with ErrSetExhausted once the set is
// done, at which point the session is ended.
func (s *Service) StudyCard(sessionID, cardID uint, correct bool) (*entities.Card, error) {
	card, err := s.cards.MarkStudied(cardID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.RecordCard(sessionID, cardID, correct); err != nil {
		return nil, fmt.Errorf("record answer: %w", err)
	}

	next, err := s.NextCard(card.SetID)
	if errors.Is(err, ErrSetExhausted) {
		if endErr := s.sessions.EndSession(sessionID); endErr != nil {
			return nil, fmt.Errorf("end session: %w", endErr)
		}
		return nil, ErrSetExhausted
	}
	if err != nil {
		return nil, err
	}
	return next, nil
}

// Skip advances past the current card without marking it studied. When
// the current card is the only unstudied one left, the set counts as
// exhausted for the skipping session.
func (s *Service) Skip(cardID uint) (*entities.Card, error) {
	card, err := s.cards.GetCard(cardID)
	if err != nil {
		return nil, err
	}

	remaining, err := s.cards.UnstudiedCards(card.SetID)
	if err != nil {
		return nil, err
	}
	// The skipped card itself is never a candidate.
	candidates := remaining[:0]
	for _, rc := range remaining {
		if rc.ID != cardID {
			candidates = append(candidates, rc)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrSetExhausted
	}

	next := candidates[s.rand.Intn(len(candidates))]
	return &next, nil
}

// Restart clears the studied flags of a set so a new cycle can begin.
func (s *Service) Restart(setID uint) error {
	return s.cards.ResetStudied(setID)
}
