package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/flashlearn/flashlearn/internal/database/cards"
	"github.com/flashlearn/flashlearn/internal/entities"
)

// CardStore defines database operations for card management.
type CardStore interface {
	AddCardToSet(setID, userID uint, term, body string) (*entities.Card, error)
	GetCard(id uint) (*entities.Card, error)
	EditCard(id uint, newTerm, newBody *string) (*entities.Card, error)
	DeleteCard(id uint) error
}

type CardsController struct {
	store CardStore
	sets  SetStore
}

func NewCardsController(store CardStore, setStore SetStore) *CardsController {
	return &CardsController{store: store, sets: setStore}
}

// AddCard creates a card in a set
// POST /api/sets/:id/cards
func (cc *CardsController) AddCard(c *gin.Context) {
	setID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Term string `json:"term" binding:"required"`
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "term and body are required")
		return
	}

	userID := GetUserID(c)
	set, err := cc.sets.GetSet(setID)
	if err != nil {
		respondNotFound(c, "set")
		return
	}
	if set.UserID != userID {
		respondForbidden(c, "set belongs to another user")
		return
	}

	card, err := cc.store.AddCardToSet(setID, userID, req.Term, req.Body)
	if err != nil {
		respondInternalError(c, err, "add card")
		return
	}
	respondCreated(c, card)
}

// GetCard returns one card
// GET /api/cards/:id
func (cc *CardsController) GetCard(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	card, err := cc.store.GetCard(id)
	if errors.Is(err, cards.ErrCardNotFound) {
		respondNotFound(c, "card")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get card")
		return
	}
	c.JSON(200, card)
}

// EditCard updates the term and/or body of a card
// PUT /api/cards/:id
func (cc *CardsController) EditCard(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Term *string `json:"term"`
		Body *string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	card, err := cc.store.EditCard(id, req.Term, req.Body)
	switch {
	case errors.Is(err, cards.ErrNothingToEdit):
		respondBadRequest(c, "term or body is required")
		return
	case errors.Is(err, cards.ErrCardNotFound):
		respondNotFound(c, "card")
		return
	case err != nil:
		respondInternalError(c, err, "edit card")
		return
	}
	c.JSON(200, card)
}

// DeleteCard removes a card
// DELETE /api/cards/:id
func (cc *CardsController) DeleteCard(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	card, err := cc.store.GetCard(id)
	if errors.Is(err, cards.ErrCardNotFound) {
		respondNotFound(c, "card")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get card")
		return
	}
	if card.UserID != GetUserID(c) {
		respondForbidden(c, "card belongs to another user")
		return
	}

	if err := cc.store.DeleteCard(id); err != nil {
		respondInternalError(c, err, "delete card")
		return
	}
	respondSuccess(c, "card deleted")
}
