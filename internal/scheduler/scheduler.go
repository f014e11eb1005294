package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"rhodlsync/internal/model"
	"rhodlsync/internal/pipeline"
)

// Scheduler runs the sync pipeline on a cron spec in daemon mode. Runs are
// single-flight: a tick that fires while the previous run is still in
// progress is skipped, keeping the single-writer assumption intact.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *pipeline.Pipeline
	Mode     model.SyncMode

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a Scheduler.
func NewScheduler(p *pipeline.Pipeline, mode model.SyncMode) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Pipeline: p,
		Mode:     mode,
	}
}

// Register registers the sync task on the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.runOnce); err != nil {
		return fmt.Errorf("register sync task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

func (s *Scheduler) runOnce() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Println("[WARN] previous sync still running, skipping this tick")
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	log.Printf("[INFO] scheduled sync starting (%s mode)", s.Mode)
	if _, err := s.Pipeline.Run(s.Mode); err != nil {
		log.Printf("[ERROR] scheduled sync: %v", err)
	}
}
