// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── users/           # User account operations
//	├── sets/            # Set and superset CRUD with nested population
//	├── cards/           # Card CRUD and studied-flag tracking
//	├── sessions/        # Study session records
//	└── shares/          # Sets shared between accounts
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./flashlearn.db")
//
//	// Create domain-specific repositories
//	setsRepo := sets.NewRepository(db.DB)
//	cardsRepo := cards.NewRepository(db.DB)
//
//	// Use repositories
//	set, err := setsRepo.GetSet(123)
//	card, err := cardsRepo.AddCardToSet(set.ID, userID, "term", "body")
//
// Lookup misses are folded into per-package not-found sentinels
// (sets.ErrSetNotFound, cards.ErrCardNotFound, ...) rather than leaking
// gorm.ErrRecordNotFound to callers.
//
// # Adding a New Domain
//
// To add a new domain:
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Implement the required interface from internal/http
//  5. Add compile-time interface check: var _ SomeInterface = (*Repository)(nil)
package database
