package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// OrphanCardsCleaner provides the ability to delete orphan cards.
type OrphanCardsCleaner interface {
	DeleteOrphanCards() (int64, error)
}

// CleanupOrphanCardsTask removes cards whose set no longer exists.
// Deleting a superset cascades only to its sets, so the cards they held
// are reclaimed asynchronously by this task.
type CleanupOrphanCardsTask struct{}

// Config returns the queue configuration for cleanup tasks.
func (t CleanupOrphanCardsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_orphan_cards",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupOrphanCardsProcessor creates a processor function for CleanupOrphanCardsTask.
func CleanupOrphanCardsProcessor(cleaner OrphanCardsCleaner) backlite.QueueProcessor[CleanupOrphanCardsTask] {
	return func(ctx context.Context, task CleanupOrphanCardsTask) error {
		if cleaner == nil {
			return fmt.Errorf("orphan cards cleaner not configured")
		}

		deleted, err := cleaner.DeleteOrphanCards()
		if err != nil {
			return fmt.Errorf("cleanup orphan cards: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d orphan cards", deleted)
		return nil
	}
}

// NewCleanupOrphanCardsQueue creates a backlite queue for card cleanup tasks.
func NewCleanupOrphanCardsQueue(cleaner OrphanCardsCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupOrphanCardsProcessor(cleaner))
}
