package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
	"github.com/Marga-Ghale/ora-boards-backend/internal/types"
)

// ============================================
// Activity Service
// ============================================

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 200
)

// ActivityService reads the board activity log
type ActivityService interface {
	// ListByBoard and ListByCard return the newest entries first. A limit
	// outside 1..MaxActivityLimit falls back to the default or the cap.
	ListByBoard(ctx context.Context, userID, boardID string, limit int) ([]*repository.ActivityDetail, error)
	ListByCard(ctx context.Context, userID, cardID string, limit int) ([]*repository.ActivityDetail, error)
	// PurgeExpired drops entries older than the retention window. A zero
	// retention keeps everything.
	PurgeExpired(ctx context.Context) (int64, error)
}

type activityService struct {
	activityRepo repository.ActivityRepository
	access       *boardAccess
	retention    time.Duration
	now          func() time.Time
}

// NewActivityService creates a new activity service
func NewActivityService(activityRepo repository.ActivityRepository, access *boardAccess, retention time.Duration) ActivityService {
	return &activityService{
		activityRepo: activityRepo,
		access:       access,
		retention:    retention,
		now:          time.Now,
	}
}

func (s *activityService) ListByBoard(ctx context.Context, userID, boardID string, limit int) ([]*repository.ActivityDetail, error) {
	if _, err := s.access.board(ctx, userID, boardID, accessRead); err != nil {
		return nil, err
	}
	return s.activityRepo.FindByBoardID(ctx, boardID, clampLimit(limit))
}

func (s *activityService) ListByCard(ctx context.Context, userID, cardID string, limit int) ([]*repository.ActivityDetail, error) {
	if _, err := s.access.card(ctx, userID, cardID, accessRead); err != nil {
		return nil, err
	}
	return s.activityRepo.FindByCardID(ctx, cardID, clampLimit(limit))
}

func (s *activityService) PurgeExpired(ctx context.Context) (int64, error) {
	if s.retention <= 0 {
		return 0, nil
	}
	return s.activityRepo.DeleteOlderThan(ctx, s.now().Add(-s.retention))
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultActivityLimit
	case limit > MaxActivityLimit:
		return MaxActivityLimit
	default:
		return limit
	}
}

// activityLog writes entries on behalf of the mutating services. A failed
// write is logged and never fails the mutation.
type activityLog struct {
	repo repository.ActivityRepository
	log  *zap.Logger
}

func (a *activityLog) record(ctx context.Context, entry *repository.Activity) {
	if err := a.repo.Create(ctx, entry); err != nil {
		a.log.Warn("failed to record activity",
			zap.String("action", entry.ActionType),
			zap.String("boardId", entry.BoardID),
			zap.Error(err),
		)
	}
}

// card records an action on a card that still exists.
func (a *activityLog) card(ctx context.Context, userID, action string, card *repository.Card, details repository.ActivityDetails) {
	cardID := card.ID
	a.record(ctx, &repository.Activity{
		BoardID:    card.BoardID,
		CardID:     &cardID,
		UserID:     userID,
		ActionType: action,
		EntityType: types.EntityCard,
		EntityID:   &cardID,
		Details:    details,
	})
}
