package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/ora-boards-backend/internal/service"
)

const jobTimeout = time.Minute

// Scheduler handles scheduled maintenance tasks
type Scheduler struct {
	cron     *cron.Cron
	services *service.Services
	log      *zap.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(services *service.Services, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron:     cron.New(),
		services: services,
		log:      log.Named("cron"),
	}
}

// Schedules holds the cron specs of the maintenance jobs. An empty
// ActivityCleanup disables activity pruning.
type Schedules struct {
	TokenCleanup    string
	ActivityCleanup string
}

// Start registers the jobs and starts the scheduler. An invalid schedule
// is returned before anything runs.
func (s *Scheduler) Start(schedules Schedules) error {
	if _, err := s.cron.AddFunc(schedules.TokenCleanup, s.purgeExpiredRefreshTokens); err != nil {
		return err
	}
	if schedules.ActivityCleanup != "" {
		if _, err := s.cron.AddFunc(schedules.ActivityCleanup, s.purgeOldActivity); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.log.Info("scheduler started",
		zap.String("tokenCleanup", schedules.TokenCleanup),
		zap.String("activityCleanup", schedules.ActivityCleanup),
	)
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// ============================================
// JOBS
// ============================================

func (s *Scheduler) purgeExpiredRefreshTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	removed, err := s.services.Auth.PurgeExpiredTokens(ctx)
	if err != nil {
		s.log.Error("purge expired refresh tokens", zap.Error(err))
		return
	}
	s.log.Info("purged expired refresh tokens", zap.Int64("removed", removed))
}

func (s *Scheduler) purgeOldActivity() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	removed, err := s.services.Activity.PurgeExpired(ctx)
	if err != nil {
		s.log.Error("purge old activity", zap.Error(err))
		return
	}
	s.log.Info("purged old activity", zap.Int64("removed", removed))
}
