// Command generate_demo creates a demo database with sample study material.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/flashlearn/flashlearn/internal/auth"
	"github.com/flashlearn/flashlearn/internal/database"
	"github.com/flashlearn/flashlearn/internal/database/cards"
	"github.com/flashlearn/flashlearn/internal/database/sets"
	"github.com/flashlearn/flashlearn/internal/database/users"
)

const defaultDemoDatabasePath = "./demo.db"

// A deliberately weak password for a throwaway local database.
const demoPassword = "demo1234"

var demoDecks = map[string][][2]string{
	"Spanish Basics": {
		{"hola", "hello"},
		{"adiós", "goodbye"},
		{"gracias", "thank you"},
		{"por favor", "please"},
		{"buenos días", "good morning"},
	},
	"Go Concurrency": {
		{"goroutine", "a lightweight thread managed by the Go runtime"},
		{"channel", "a typed conduit for sending and receiving values"},
		{"select", "waits on multiple channel operations"},
		{"sync.WaitGroup", "waits for a collection of goroutines to finish"},
	},
	"World Capitals": {
		{"France", "Paris"},
		{"Japan", "Tokyo"},
		{"Brazil", "Brasília"},
		{"Kenya", "Nairobi"},
		{"Canada", "Ottawa"},
		{"Australia", "Canberra"},
	},
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create demo database: %v", err)
	}
	defer db.Close()

	usersRepo := users.NewRepository(db.DB)
	setsRepo := sets.NewRepository(db.DB)
	cardsRepo := cards.NewRepository(db.DB)

	hash, err := auth.HashPassword(demoPassword, bcrypt.MinCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	user, err := usersRepo.CreateUser("demo", "demo@example.com", hash)
	if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}

	super, err := setsRepo.CreateSuperSet("Language Learning", user.ID)
	if err != nil {
		log.Fatalf("Failed to create demo superset: %v", err)
	}

	totalCards := 0
	for title, pairs := range demoDecks {
		var superSetID *uint
		if title == "Spanish Basics" {
			superSetID = &super.ID
		}
		set, err := setsRepo.CreateSet(title, user.ID, superSetID)
		if err != nil {
			log.Fatalf("Failed to create demo set %q: %v", title, err)
		}
		for _, pair := range pairs {
			if _, err := cardsRepo.AddCardToSet(set.ID, user.ID, pair[0], pair[1]); err != nil {
				log.Fatalf("Failed to add demo card %q: %v", pair[0], err)
			}
			totalCards++
		}
	}

	log.Printf("Demo database ready: user demo@example.com / %s, %d decks, %d cards",
		demoPassword, len(demoDecks), totalCards)
}
