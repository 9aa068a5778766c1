package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flashlearn/flashlearn/internal/auth"
	"github.com/flashlearn/flashlearn/internal/entities"
)

// SessionListStore lists a user's past study sessions for the stats view.
type SessionListStore interface {
	SessionsForUser(userID uint) ([]entities.StudySession, error)
}

// UsersController serves the current user's profile and study statistics.
type UsersController struct {
	authService *auth.Service
	sets        SetStore
	sessions    SessionListStore
}

func NewUsersController(authService *auth.Service, sets SetStore, sessions SessionListStore) *UsersController {
	return &UsersController{
		authService: authService,
		sets:        sets,
		sessions:    sessions,
	}
}

// UserProfileResponse is the payload for GET /api/me.
type UserProfileResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserStatsResponse aggregates counts across the user's material.
type UserStatsResponse struct {
	Sets      int `json:"sets"`
	SuperSets int `json:"super_sets"`
	Cards     int `json:"cards"`
	Sessions  int `json:"sessions"`
}

// Me returns the authenticated user's profile
// GET /api/me
func (uc *UsersController) Me(c *gin.Context) {
	user, err := uc.authService.GetUserByID(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "load current user")
		return
	}

	c.JSON(http.StatusOK, UserProfileResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	})
}

// Stats returns counts of the user's sets, supersets, cards and sessions
// GET /api/me/stats
func (uc *UsersController) Stats(c *gin.Context) {
	userID := GetUserID(c)

	topLevel, err := uc.sets.GetUserSets(userID)
	if err != nil {
		respondInternalError(c, err, "count user sets")
		return
	}
	superSets, err := uc.sets.GetUserSuperSets(userID)
	if err != nil {
		respondInternalError(c, err, "count user supersets")
		return
	}
	sessions, err := uc.sessions.SessionsForUser(userID)
	if err != nil {
		respondInternalError(c, err, "count user sessions")
		return
	}

	stats := UserStatsResponse{
		Sets:      len(topLevel),
		SuperSets: len(superSets),
		Sessions:  len(sessions),
	}
	for _, set := range topLevel {
		stats.Cards += len(set.Cards)
	}
	for _, super := range superSets {
		stats.Sets += len(super.Sets)
		for _, set := range super.Sets {
			stats.Cards += len(set.Cards)
		}
	}

	c.JSON(http.StatusOK, stats)
}
