// Package scheduler drives periodic catalog maintenance.
package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/marhild/booksmanager/internal/config"
	"github.com/marhild/booksmanager/internal/tasks"
)

// CleanupScheduler periodically enqueues the orphan-association sweep.
type CleanupScheduler struct {
	taskClient *tasks.Client
	cfg        config.Cleanup

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

// NewCleanupScheduler creates a new scheduler instance.
func NewCleanupScheduler(taskClient *tasks.Client, cfg config.Cleanup) *CleanupScheduler {
	return &CleanupScheduler{
		taskClient: taskClient,
		cfg:        cfg,
		cron:       cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if cleanup is enabled.
func (s *CleanupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		log.Printf("Association cleanup scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.Schedule, s.enqueueSweep)
	if err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", s.cfg.Schedule, err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	log.Printf("Association cleanup scheduler started with schedule %q", s.cfg.Schedule)
	return nil
}

// Stop halts the scheduler. Already-enqueued sweeps finish in the task
// queue.
func (s *CleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	s.cron.Remove(s.entryID)
	s.cron.Stop()
	s.isRunning = false
	log.Printf("Association cleanup scheduler stopped")
}

func (s *CleanupScheduler) enqueueSweep() {
	_, err := s.taskClient.Add(tasks.SweepOrphanAssociationsTask{}).Save()
	if err != nil {
		log.Printf("Failed to enqueue association sweep: %v", err)
	}
}
