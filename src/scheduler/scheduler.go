package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cryptoboard/src/interfaces"
	"cryptoboard/src/logger"
	"cryptoboard/src/models"

	"github.com/robfig/cron/v3"
)

// ISnapshotter renders the configured dashboard into an archive record.
type ISnapshotter interface {
	Snapshot(ctx context.Context) (models.MSnapshot, error)
}

// -----------------------------------------------------------------------------

// ArchiveScheduler periodically renders the dashboard and stores the result.
// The archive is a history, the page never reads from it.
type ArchiveScheduler struct {
	Cron        *cron.Cron
	Snapshotter ISnapshotter
	Store       interfaces.ISnapshotStore
	Logger      *logger.Logger
	Timeout     time.Duration

	mu      sync.Mutex
	lastID  string
	lastErr error
	runs    int
}

// -----------------------------------------------------------------------------

func NewArchiveScheduler(snap ISnapshotter, store interfaces.ISnapshotStore, timeout time.Duration, log *logger.Logger) *ArchiveScheduler {
	return &ArchiveScheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Snapshotter: snap,
		Store:       store,
		Logger:      log,
		Timeout:     timeout,
	}
}

// -----------------------------------------------------------------------------

// Register adds the archive job. Schedules use the six-field cron format
// with a leading seconds field.
func (s *ArchiveScheduler) Register(schedule string) error {
	if _, err := s.Cron.AddFunc(schedule, func() { s.RunNow(context.Background()) }); err != nil {
		return fmt.Errorf("register archive task: %w", err)
	}
	return nil
}

func (s *ArchiveScheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("Archive scheduler started")
}

// Stop waits for a running job to finish.
func (s *ArchiveScheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info("Archive scheduler stopped")
}

// -----------------------------------------------------------------------------

// RunNow renders and stores one snapshot. Failures are logged and kept for
// Status; the next tick tries again.
func (s *ArchiveScheduler) RunNow(ctx context.Context) (models.MSnapshot, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	snap, err := s.Snapshotter.Snapshot(ctx)
	if err == nil {
		err = s.Store.SaveSnapshot(snap)
	}

	s.mu.Lock()
	s.runs++
	s.lastErr = err
	if err == nil {
		s.lastID = snap.ID
	}
	s.mu.Unlock()

	if err != nil {
		s.Logger.Error("Archive run failed: %v", err)
		return models.MSnapshot{}, err
	}
	s.Logger.Debug("Archive run stored %s", snap.ID)
	return snap, nil
}

// -----------------------------------------------------------------------------

// Status reports the number of runs, the last stored id and the last error.
func (s *ArchiveScheduler) Status() (int, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs, s.lastID, s.lastErr
}
