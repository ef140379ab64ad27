package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// OrphanAssociationsCleaner provides the ability to delete join rows whose
// endpoints no longer exist.
type OrphanAssociationsCleaner interface {
	DeleteOrphanAssociations() (int64, error)
}

// SweepOrphanAssociationsTask removes author_books and book_categories
// rows pointing at deleted entities. Catalogs created before the cascade
// policy (imported database files) may still carry such rows.
type SweepOrphanAssociationsTask struct{}

// Config returns the queue configuration for the sweep task.
func (t SweepOrphanAssociationsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "sweep_orphan_associations",
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

// SweepOrphanAssociationsProcessor creates a processor function for
// SweepOrphanAssociationsTask.
func SweepOrphanAssociationsProcessor(cleaner OrphanAssociationsCleaner) backlite.QueueProcessor[SweepOrphanAssociationsTask] {
	return func(ctx context.Context, task SweepOrphanAssociationsTask) error {
		if cleaner == nil {
			return fmt.Errorf("orphan associations cleaner not configured")
		}

		deleted, err := cleaner.DeleteOrphanAssociations()
		if err != nil {
			return fmt.Errorf("sweep orphan associations: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d orphan association rows", deleted)
		return nil
	}
}

// NewSweepOrphanAssociationsQueue creates a backlite queue for the sweep.
func NewSweepOrphanAssociationsQueue(cleaner OrphanAssociationsCleaner) backlite.Queue {
	return backlite.NewQueue(SweepOrphanAssociationsProcessor(cleaner))
}
