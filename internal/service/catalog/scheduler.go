package catalog

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// SnapshotScheduler flushes the catalog on a cron schedule, as a time-based
// durability backstop alongside the count-modulo checkpoints.
type SnapshotScheduler struct {
	cron   *cron.Cron
	svc    *Service
	logger *slog.Logger
}

// NewSnapshotScheduler registers a flush job for the given cron spec
// (e.g. "@every 5m"). An invalid spec is a configuration error.
func NewSnapshotScheduler(svc *Service, schedule string, logger *slog.Logger) (*SnapshotScheduler, error) {
	s := &SnapshotScheduler{
		cron:   cron.New(),
		svc:    svc,
		logger: logger,
	}
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SnapshotScheduler) run() {
	if err := s.svc.Flush(context.Background()); err != nil {
		s.logger.Warn("scheduled snapshot failed", "error", err)
	}
}

// Start begins scheduled flushes.
func (s *SnapshotScheduler) Start() {
	s.cron.Start()
	s.logger.Info("snapshot scheduler started")
}

// Stop stops the scheduler without waiting for a running flush.
func (s *SnapshotScheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("snapshot scheduler stopped")
}
