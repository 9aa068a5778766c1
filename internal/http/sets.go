package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/flashlearn/flashlearn/internal/database/sets"
	"github.com/flashlearn/flashlearn/internal/database/shares"
	"github.com/flashlearn/flashlearn/internal/entities"
)

// SetStore defines database operations for set and superset management.
type SetStore interface {
	CreateSet(title string, userID uint, superSetID *uint) (*entities.Set, error)
	CreateSuperSet(title string, userID uint) (*entities.SuperSet, error)
	GetSet(id uint) (*entities.Set, error)
	GetSuperSet(id uint) (*entities.SuperSet, error)
	GetUserSets(userID uint) ([]entities.Set, error)
	GetUserSuperSets(userID uint) ([]entities.SuperSet, error)
	GetSubsets(superSetID uint) ([]entities.Set, error)
	RenameSet(id uint, newTitle string) (*entities.Set, error)
	RenameSuperSet(id uint, newTitle string) (*entities.SuperSet, error)
	DeleteSet(id uint) error
	DeleteSuperSet(id uint) error
}

// ShareStore defines database operations for set sharing.
type ShareStore interface {
	ShareSet(setID, ownerID uint, receiverEmail string) (*entities.SharedSet, error)
	Unshare(setID uint, receiverEmail string) error
	SetsSharedWith(email string) ([]entities.Set, error)
	SharesForSet(setID uint) ([]entities.SharedSet, error)
}

type SetsController struct {
	store  SetStore
	shares ShareStore
}

func NewSetsController(store SetStore, shareStore ShareStore) *SetsController {
	return &SetsController{store: store, shares: shareStore}
}

// UserSetsResponse is the top-level listing: the user's top-level sets
// plus all their supersets. Nested sets appear only inside supersets.
type UserSetsResponse struct {
	Sets      []entities.Set      `json:"sets"`
	SuperSets []entities.SuperSet `json:"super_sets"`
}

// GetUserSets returns the top-level listing for the current user
// GET /api/sets
func (sc *SetsController) GetUserSets(c *gin.Context) {
	userID := GetUserID(c)

	topLevel, err := sc.store.GetUserSets(userID)
	if err != nil {
		respondInternalError(c, err, "get user sets")
		return
	}
	superSets, err := sc.store.GetUserSuperSets(userID)
	if err != nil {
		respondInternalError(c, err, "get user supersets")
		return
	}

	c.JSON(200, UserSetsResponse{Sets: topLevel, SuperSets: superSets})
}

// CreateSet creates a set, optionally nested under a superset
// POST /api/sets
func (sc *SetsController) CreateSet(c *gin.Context) {
	var req struct {
		Title      string `json:"title" binding:"required"`
		SuperSetID *uint  `json:"super_set_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title is required")
		return
	}

	userID := GetUserID(c)
	if req.SuperSetID != nil {
		superSet, err := sc.store.GetSuperSet(*req.SuperSetID)
		if errors.Is(err, sets.ErrSuperSetNotFound) {
			respondNotFound(c, "superset")
			return
		}
		if err != nil {
			respondInternalError(c, err, "check superset")
			return
		}
		if superSet.UserID != userID {
			respondForbidden(c, "superset belongs to another user")
			return
		}
	}

	set, err := sc.store.CreateSet(req.Title, userID, req.SuperSetID)
	if err != nil {
		respondInternalError(c, err, "create set")
		return
	}
	respondCreated(c, set)
}

// GetSet returns one populated set
// GET /api/sets/:id
func (sc *SetsController) GetSet(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	set, err := sc.store.GetSet(id)
	if errors.Is(err, sets.ErrSetNotFound) {
		respondNotFound(c, "set")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get set")
		return
	}

	if !sc.canRead(c, set) {
		respondForbidden(c, "set belongs to another user")
		return
	}
	c.JSON(200, set)
}

// RenameSet updates a set's title
// PUT /api/sets/:id
func (sc *SetsController) RenameSet(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title is required")
		return
	}
	if !sc.ownsSet(c, id) {
		return
	}

	set, err := sc.store.RenameSet(id, req.Title)
	if errors.Is(err, sets.ErrSetNotFound) {
		respondNotFound(c, "set")
		return
	}
	if err != nil {
		respondInternalError(c, err, "rename set")
		return
	}
	c.JSON(200, set)
}

// DeleteSet removes a set
// DELETE /api/sets/:id
func (sc *SetsController) DeleteSet(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !sc.ownsSet(c, id) {
		return
	}

	if err := sc.store.DeleteSet(id); err != nil {
		respondInternalError(c, err, "delete set")
		return
	}
	respondSuccess(c, "set deleted")
}

// CreateSuperSet creates a superset
// POST /api/supersets
func (sc *SetsController) CreateSuperSet(c *gin.Context) {
	var req struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title is required")
		return
	}

	superSet, err := sc.store.CreateSuperSet(req.Title, GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "create superset")
		return
	}
	respondCreated(c, superSet)
}

// GetSuperSet returns one populated superset
// GET /api/supersets/:id
func (sc *SetsController) GetSuperSet(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	superSet, err := sc.store.GetSuperSet(id)
	if errors.Is(err, sets.ErrSuperSetNotFound) {
		respondNotFound(c, "superset")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get superset")
		return
	}
	if superSet.UserID != GetUserID(c) {
		respondForbidden(c, "superset belongs to another user")
		return
	}
	c.JSON(200, superSet)
}

// GetSubsets lists the sets nested under a superset
// GET /api/supersets/:id/sets
func (sc *SetsController) GetSubsets(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if !sc.ownsSuperSet(c, id) {
		return
	}

	subsets, err := sc.store.GetSubsets(id)
	if err != nil {
		respondInternalError(c, err, "get subsets")
		return
	}
	c.JSON(200, subsets)
}

// RenameSuperSet updates a superset's title
// PUT /api/supersets/:id
func (sc *SetsController) RenameSuperSet(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title is required")
		return
	}
	if !sc.ownsSuperSet(c, id) {
		return
	}

	superSet, err := sc.store.RenameSuperSet(id, req.Title)
	if errors.Is(err, sets.ErrSuperSetNotFound) {
		respondNotFound(c, "superset")
		return
	}
	if err != nil {
		respondInternalError(c, err, "rename superset")
		return
	}
	c.JSON(200, superSet)
}

// DeleteSuperSet removes a superset and its child sets
// DELETE /api/supersets/:id
func (sc *SetsController) DeleteSuperSet(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if !sc.ownsSuperSet(c, id) {
		return
	}

	if err := sc.store.DeleteSuperSet(id); err != nil {
		respondInternalError(c, err, "delete superset")
		return
	}
	respondSuccess(c, "superset deleted")
}

// ShareSet grants another account access to a set
// POST /api/sets/:id/shares
func (sc *SetsController) ShareSet(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "email is required")
		return
	}
	if !sc.ownsSet(c, id) {
		return
	}

	share, err := sc.shares.ShareSet(id, GetUserID(c), req.Email)
	if errors.Is(err, shares.ErrAlreadyShared) {
		respondBadRequest(c, err.Error())
		return
	}
	if err != nil {
		respondInternalError(c, err, "share set")
		return
	}
	respondCreated(c, share)
}

// Unshare revokes a receiver's access to a set
// DELETE /api/sets/:id/shares
func (sc *SetsController) Unshare(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	email := c.Query("email")
	if email == "" {
		respondBadRequest(c, "email is required")
		return
	}
	if !sc.ownsSet(c, id) {
		return
	}

	err := sc.shares.Unshare(id, email)
	if errors.Is(err, shares.ErrShareNotFound) {
		respondNotFound(c, "share")
		return
	}
	if err != nil {
		respondInternalError(c, err, "unshare set")
		return
	}
	respondSuccess(c, "share revoked")
}

// GetSharedWithMe lists populated sets shared with the current user
// GET /api/shared
func (sc *SetsController) GetSharedWithMe(c *gin.Context) {
	shared, err := sc.shares.SetsSharedWith(GetUserEmail(c))
	if err != nil {
		respondInternalError(c, err, "get shared sets")
		return
	}
	c.JSON(200, shared)
}

// canRead reports whether the current user owns the set or has it shared
// with them.
func (sc *SetsController) canRead(c *gin.Context, set *entities.Set) bool {
	if set.UserID == GetUserID(c) {
		return true
	}
	for _, share := range sc.sharesFor(set.ID) {
		if share.ReceiverEmail == GetUserEmail(c) {
			return true
		}
	}
	return false
}

func (sc *SetsController) sharesFor(setID uint) []entities.SharedSet {
	shared, err := sc.shares.SharesForSet(setID)
	if err != nil {
		return nil
	}
	return shared
}

// ownsSet verifies the current user owns the set, responding with the
// appropriate error when not.
func (sc *SetsController) ownsSet(c *gin.Context, id uint) bool {
	set, err := sc.store.GetSet(id)
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

// ownsSuperSet verifies the current user owns the superset, responding
// with the appropriate error when not.
func (sc *SetsController) ownsSuperSet(c *gin.Context, id uint) bool {
	superSet, err := sc.store.GetSuperSet(id)
	if errors.Is(err, sets.ErrSuperSetNotFound) {
		respondNotFound(c, "superset")
		return false
	}
	if err != nil {
		respondInternalError(c, err, "check superset owner")
		return false
	}
	if superSet.UserID != GetUserID(c) {
		respondForbidden(c, "superset belongs to another user")
		return false
	}
	return true
}
