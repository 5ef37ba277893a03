// Package scheduler runs the pipeline on a cron schedule for deployments
// that want recurring full rebuilds instead of one-shot invocations.
package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// PipelineScheduler triggers periodic pipeline runs. Runs never overlap: a
// tick that fires while the previous run is still going is skipped.
type PipelineScheduler struct {
	runPipeline func() error

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	isSyncing bool
}

// NewPipelineScheduler creates a scheduler around the given run function
func NewPipelineScheduler(runPipeline func() error) *PipelineScheduler {
	return &PipelineScheduler{
		runPipeline: runPipeline,
		cron:        cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins firing runs according to the given cron schedule
func (s *PipelineScheduler) Start(schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(schedule, func() {
		s.runOnce()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Printf("Pipeline scheduler: started with schedule '%s'. Next run: %v",
		schedule, s.cron.Entry(entryID).Schedule.Next(time.Now()))

	return nil
}

// Stop stops accepting new runs and waits for an in-flight run to finish
func (s *PipelineScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	// Wait outside the lock: the stop context completes only once an
	// in-flight run returns, and that run takes the lock to clear its
	// syncing flag.
	ctx := s.cron.Stop()
	<-ctx.Done()

	log.Printf("Pipeline scheduler: stopped")
}

// IsRunning returns whether the scheduler is active
func (s *PipelineScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next run will fire
func (s *PipelineScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	t := s.cron.Entry(s.entryID).Next
	return &t
}

func (s *PipelineScheduler) runOnce() {
	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		log.Printf("Pipeline run: skipped (previous run still in progress)")
		return
	}
	s.isSyncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isSyncing = false
		s.mu.Unlock()
	}()

	if err := s.runPipeline(); err != nil {
		log.Printf("Pipeline run failed: %v", err)
	}
}
