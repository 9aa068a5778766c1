package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/flashlearn/flashlearn/internal/auth"
	"github.com/flashlearn/flashlearn/internal/database/cards"
	"github.com/flashlearn/flashlearn/internal/database/sessions"
	"github.com/flashlearn/flashlearn/internal/database/sets"
	"github.com/flashlearn/flashlearn/internal/database/shares"
	"github.com/flashlearn/flashlearn/internal/database/users"
	"github.com/flashlearn/flashlearn/internal/http"
	"github.com/flashlearn/flashlearn/internal/study"
	"github.com/flashlearn/flashlearn/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// SetStore implementations
var _ http.SetStore = (*sets.Repository)(nil)

// ShareStore implementations
var _ http.ShareStore = (*shares.Repository)(nil)

// CardStore implementations
var _ http.CardStore = (*cards.Repository)(nil)

// Session store implementations
var _ http.SessionStatsStore = (*sessions.Repository)(nil)
var _ http.SessionListStore = (*sessions.Repository)(nil)

// UserRepository implementations
var _ auth.UserRepository = (*users.Repository)(nil)

// =============================================================================
// Study Traversal
// =============================================================================

var _ study.CardStore = (*cards.Repository)(nil)
var _ study.SessionStore = (*sessions.Repository)(nil)

// =============================================================================
// Background Work
// =============================================================================

// OrphanCardsCleaner implementations
var _ tasks.OrphanCardsCleaner = (*cards.Repository)(nil)
