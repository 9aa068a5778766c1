package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flashlearn/flashlearn/internal/database/cards"
	"github.com/flashlearn/flashlearn/internal/database/sessions"
	"github.com/flashlearn/flashlearn/internal/database/sets"
	"github.com/flashlearn/flashlearn/internal/entities"
	"github.com/flashlearn/flashlearn/internal/study"
)

// SessionStatsStore exposes session statistics to the study controller.
type SessionStatsStore interface {
	GetSession(id uint) (*entities.StudySession, error)
	SessionStats(sessionID uint) (*sessions.Stats, error)
}

type StudyController struct {
	study *study.Service
	stats SessionStatsStore
	sets  SetStore
	cards CardStore
}

func NewStudyController(svc *study.Service, stats SessionStatsStore, sets SetStore, cardStore CardStore) *StudyController {
	return &StudyController{study: svc, stats: stats, sets: sets, cards: cardStore}
}

// StudyResponse carries the session and the card to show next. Done is
// true and Card nil once the set is exhausted.
type StudyResponse struct {
	SessionID uint           `json:"session_id,omitempty"`
	Card      *entities.Card `json:"card,omitempty"`
	Done      bool           `json:"done"`
}

// StartSession opens a study session over a set
// POST /api/sets/:id/study
func (st *StudyController) StartSession(c *gin.Context) {
	setID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !st.ownsSet(c, setID) {
		return
	}

	session, card, err := st.study.StartSession(GetUserID(c), setID)
	if errors.Is(err, study.ErrSetExhausted) {
		c.JSON(http.StatusOK, StudyResponse{Done: true})
		return
	}
	if err != nil {
		respondInternalError(c, err, "start study session")
		return
	}

	c.JSON(http.StatusCreated, StudyResponse{SessionID: session.ID, Card: card})
}

// StudyCard marks a card studied, records the answer, and advances
// POST /api/study/:id/cards/:cardId
func (st *StudyController) StudyCard(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	cardID, ok := parseIDParam(c, "cardId")
	if !ok {
		return
	}
	if !st.ownsSession(c, sessionID) || !st.ownsCard(c, cardID) {
		return
	}
	var req struct {
		Correct bool `json:"correct"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	next, err := st.study.StudyCard(sessionID, cardID, req.Correct)
	if errors.Is(err, study.ErrSetExhausted) {
		c.JSON(http.StatusOK, StudyResponse{SessionID: sessionID, Done: true})
		return
	}
	if errors.Is(err, cards.ErrCardNotFound) {
		respondNotFound(c, "card")
		return
	}
	if err != nil {
		respondInternalError(c, err, "study card")
		return
	}

	c.JSON(http.StatusOK, StudyResponse{SessionID: sessionID, Card: next})
}

// Skip advances past a card without marking it studied
// POST /api/cards/:id/skip
func (st *StudyController) Skip(c *gin.Context) {
	cardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !st.ownsCard(c, cardID) {
		return
	}

	next, err := st.study.Skip(cardID)
	if errors.Is(err, study.ErrSetExhausted) {
		c.JSON(http.StatusOK, StudyResponse{Done: true})
		return
	}
	if errors.Is(err, cards.ErrCardNotFound) {
		respondNotFound(c, "card")
		return
	}
	if err != nil {
		respondInternalError(c, err, "skip card")
		return
	}

	c.JSON(http.StatusOK, StudyResponse{Card: next})
}

// Restart clears the studied flags of a set for a new cycle
// POST /api/sets/:id/study/restart
func (st *StudyController) Restart(c *gin.Context) {
	setID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !st.ownsSet(c, setID) {
		return
	}

	if err := st.study.Restart(setID); err != nil {
		respondInternalError(c, err, "restart set")
		return
	}
	respondSuccess(c, "studied flags cleared")
}

// SessionStats returns answered/correct counts for a session
// GET /api/study/:id
func (st *StudyController) SessionStats(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := st.stats.GetSession(sessionID)
	if errors.Is(err, sessions.ErrSessionNotFound) {
		respondNotFound(c, "session")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get session")
		return
	}
	if session.UserID != GetUserID(c) {
		respondForbidden(c, "session belongs to another user")
		return
	}

	stats, err := st.stats.SessionStats(sessionID)
	if err != nil {
		respondInternalError(c, err, "get session stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session, "stats": stats})
}

// ownsSet verifies the current user owns the set, responding with the
// appropriate error when not.
func (st *StudyController) ownsSet(c *gin.Context, id uint) bool {
	set, err := st.sets.GetSet(id)
	if errors.Is(err, sets.ErrSetNotFound) {
		respondNotFound(c, "set")
		return false
	}
	if err != nil {
		respondInternalError(c, err, "check set owner")
		return false
	}
	if set.UserID != GetUserID(c) {
		respondForbidden(c, "set belongs to another user")
		return false
	}
	return true
}

// ownsCard verifies the current user owns the card.
func (st *StudyController) ownsCard(c *gin.Context, id uint) bool {
	card, err := st.cards.GetCard(id)
	if errors.Is(err, cards.ErrCardNotFound) {
		respondNotFound(c, "card")
		return false
	}
	if err != nil {
		respondInternalError(c, err, "check card owner")
		return false
	}
	if card.UserID != GetUserID(c) {
		respondForbidden(c, "card belongs to another user")
		return false
	}
	return true
}

// ownsSession verifies the current user owns the study session.
func (st *StudyController) ownsSession(c *gin.Context, id uint) bool {
	session, err := st.stats.GetSession(id)
	if errors.Is(err, sessions.ErrSessionNotFound) {
		respondNotFound(c, "session")
		return false
	}
	if err != nil {
		respondInternalError(c, err, "check session owner")
		return false
	}
	if session.UserID != GetUserID(c) {
		respondForbidden(c, "session belongs to another user")
		return false
	}
	return true
}
