package http

import (
	"github.com/gin-gonic/gin"

	"github.com/flashlearn/flashlearn/internal/auth"
	"github.com/flashlearn/flashlearn/internal/database"
	"github.com/flashlearn/flashlearn/internal/study"
)

// RouterConfig holds all dependencies needed to build the HTTP router.
// A single struct keeps the wiring in entrypoint readable and makes
// partial routers easy to build in tests.
type RouterConfig struct {
	Database *database.Database
	Version  string

	AuthService    *auth.Service
	AuthController *auth.Controller
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	CSRFSecret     []byte
	SecureCookies  bool

	SetStore     SetStore
	ShareStore   ShareStore
	CardStore    CardStore
	StudyService *study.Service
	SessionStore SessionStatsStore
	SessionList  SessionListStore
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by
	// CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	if cfg.AuthController != nil {
		cfg.AuthController.RegisterRoutes(router)
	}

	setsController := NewSetsController(cfg.SetStore, cfg.ShareStore)
	cardsController := NewCardsController(cfg.CardStore, cfg.SetStore)
	studyController := NewStudyController(cfg.StudyService, cfg.SessionStore, cfg.SetStore, cfg.CardStore)
	usersController := NewUsersController(cfg.AuthService, cfg.SetStore, cfg.SessionList)

	// Set and superset endpoints
	router.GET("/api/sets", setsController.GetUserSets)
	router.POST("/api/sets", setsController.CreateSet)
	router.GET("/api/sets/:id", setsController.GetSet)
	router.PUT("/api/sets/:id", setsController.RenameSet)
	router.DELETE("/api/sets/:id", setsController.DeleteSet)
	router.POST("/api/supersets", setsController.CreateSuperSet)
	router.GET("/api/supersets/:id", setsController.GetSuperSet)
	router.GET("/api/supersets/:id/sets", setsController.GetSubsets)
	router.PUT("/api/supersets/:id", setsController.RenameSuperSet)
	router.DELETE("/api/supersets/:id", setsController.DeleteSuperSet)

	// Sharing endpoints
	router.POST("/api/sets/:id/shares", setsController.ShareSet)
	router.DELETE("/api/sets/:id/shares", setsController.Unshare)
	router.GET("/api/shared", setsController.GetSharedWithMe)

	// Card endpoints
	router.POST("/api/sets/:id/cards", cardsController.AddCard)
	router.GET("/api/cards/:id", cardsController.GetCard)
	router.PUT("/api/cards/:id", cardsController.EditCard)
	router.DELETE("/api/cards/:id", cardsController.DeleteCard)
	router.POST("/api/cards/:id/skip", studyController.Skip)

	// Study endpoints
	router.POST("/api/sets/:id/study", studyController.StartSession)
	router.POST("/api/sets/:id/study/restart", studyController.Restart)
	router.POST("/api/study/:id/cards/:cardId", studyController.StudyCard)
	router.GET("/api/study/:id", studyController.SessionStats)

	// Current user endpoints
	router.GET("/api/me", usersController.Me)
	router.GET("/api/me/stats", usersController.Stats)

	return router
}
