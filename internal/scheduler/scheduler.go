package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"DataLens/internal/store"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the upload cache housekeeping tasks.
type Scheduler struct {
	Cron    *cron.Cron
	Uploads store.Store
	TTL     time.Duration
	Ctx     context.Context

	now func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, uploads store.Store, ttl time.Duration) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Uploads: uploads,
		TTL:     ttl,
		Ctx:     ctx,
		now:     time.Now,
	}
}

// Register adds the purge task on the given seconds-enabled cron expression.
func (s *Scheduler) Register(purgeCron string) error {
	if _, err := s.Cron.AddFunc(purgeCron, s.purgeTask); err != nil {
		return fmt.Errorf("register purge task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running purge.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// PurgeNow runs the purge task immediately.
func (s *Scheduler) PurgeNow() (int, error) {
	cutoff := s.now().Add(-s.TTL)
	n, err := s.Uploads.Purge(s.Ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge uploads before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return n, nil
}

func (s *Scheduler) purgeTask() {
	n, err := s.PurgeNow()
	if err != nil {
		log.Printf("[ERROR] %v", err)
		return
	}
	if n > 0 {
		log.Printf("[INFO] purged %d expired uploads", n)
	}
}
