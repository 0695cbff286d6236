package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/store"
	"github.com/ppongpeauk/xcs/pkg/metricsx"
)

// HousekeepingService periodically purges expired invitation codes and
// email verification codes.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs cleanup immediately and then on every tick until Stop.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup deletes expired records once. Each kind is independent, so one
// failure does not stop the others.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	now := time.Now()
	s.Logger.Debug("starting housekeeping cleanup")

	var total int64
	for _, job := range []struct {
		kind string
		fn   func(context.Context, time.Time) (int64, error)
	}{
		{"invitations", s.Store.Invitations().DeleteExpiredInvitations},
		{"verification_codes", s.Store.VerificationCodes().DeleteExpiredVerificationCodes},
	} {
		n, err := job.fn(ctx, now)
		if err != nil {
			s.Logger.Error("failed to delete expired records", "kind", job.kind, "error", err)
			continue
		}
		metricsx.HousekeepingDeleted.WithLabelValues(job.kind).Add(float64(n))
		total += n
	}

	s.Logger.Info("housekeeping cleanup completed", "deleted", total)
}
